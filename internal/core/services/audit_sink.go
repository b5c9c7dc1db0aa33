package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/ports"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
)

// auditPublishTimeout bounds each downstream publish after commit.
const auditPublishTimeout = 5 * time.Second

// auditSink records committed lifecycle events. Failures are logged and
// never reach the caller; the batch transition has already committed.
type auditSink struct {
	writer    portsrepo.AuditLogWriter
	publisher ports.AuditPublisher
}

func (a *auditSink) Record(ctx context.Context, events ...domain.AuditEvent) {
	if a == nil {
		return
	}
	// The request may be cancelled once the response is written.
	ctx = context.WithoutCancel(ctx)
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, event := range events {
		attrs := []any{
			slog.String("audit_id", event.AuditID),
			slog.String("batch_reference", event.BatchReference),
			slog.String("action", string(event.Action)),
		}
		if a.writer != nil {
			if err := a.writer.AppendAuditLog(ctx, event); err != nil {
				logger.Error("Failed to write audit log", append(attrs, slog.String("error", err.Error()))...)
			}
		}
		if a.publisher != nil {
			pubCtx, cancel := context.WithTimeout(ctx, auditPublishTimeout)
			err := a.publisher.PublishAuditEvent(pubCtx, event)
			cancel()
			if err != nil {
				logger.Error("Failed to publish audit event", append(attrs, slog.String("error", err.Error()))...)
			}
		}
	}
}
