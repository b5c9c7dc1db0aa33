package ports

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// BatchLocker serialises mutations of the same batch across callers.
type BatchLocker interface {
	// WithLock runs fn while holding the lock for key. A lock that cannot be
	// acquired is reported as apperrors.ErrConflict.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// AuditPublisher forwards committed audit events to downstream consumers.
type AuditPublisher interface {
	PublishAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
