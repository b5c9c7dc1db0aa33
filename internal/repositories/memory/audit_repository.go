package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
)

// AuditLogRepository is an append-only list of audit events.
type AuditLogRepository struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
}

// NewAuditLogRepository creates an empty audit log.
func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

var _ portsrepo.AuditLogRepositoryFacade = (*AuditLogRepository)(nil)

func (r *AuditLogRepository) AppendAuditLog(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *AuditLogRepository) ListAuditLogsByBatch(_ context.Context, batchID string) ([]domain.AuditEvent, error) {
	r.mu.RLock()
	out := make([]domain.AuditEvent, 0)
	for _, e := range r.events {
		if e.BatchID == batchID {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	// Stable sort keeps append order for equal timestamps, reversed below.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
