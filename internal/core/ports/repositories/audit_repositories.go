package repositories

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// AuditLogWriter appends lifecycle events. Events are never updated or removed.
type AuditLogWriter interface {
	AppendAuditLog(ctx context.Context, event domain.AuditEvent) error
}

// AuditLogReader lists the recorded events of a batch, newest first.
type AuditLogReader interface {
	ListAuditLogsByBatch(ctx context.Context, batchID string) ([]domain.AuditEvent, error)
}

// AuditLogRepositoryFacade combines audit reads and writes.
type AuditLogRepositoryFacade interface {
	AuditLogWriter
	AuditLogReader
}
