// Package memory keeps batches, audit logs and master data in process memory.
// It backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/SscSPs/eft_batch_service/internal/utils/pagination"
)

const maxListLimit = 100

// BatchRepository stores batches keyed by ID. Transactions are serialised on
// one mutex and stage their writes until fn returns without error.
type BatchRepository struct {
	mu      sync.RWMutex
	batches map[string]*domain.Batch
}

// NewBatchRepository creates an empty repository.
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{batches: make(map[string]*domain.Batch)}
}

var _ portsrepo.BatchRepositoryWithTx = (*BatchRepository)(nil)

// FindBatchByID returns a deep copy of the stored batch.
func (r *BatchRepository) FindBatchByID(_ context.Context, batchID string) (*domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[batchID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return b.Clone(), nil
}

// ListBatches returns batch headers newest first.
func (r *BatchRepository) ListBatches(_ context.Context, filter portsrepo.BatchFilter) ([]domain.Batch, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit, maxListLimit)

	r.mu.RLock()
	matched := make([]domain.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if !matches(b, filter) {
			continue
		}
		header := *b.Clone()
		header.Items = nil
		matched = append(matched, header)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return newerThan(&matched[i], &matched[j]) })

	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor := domain.Batch{BatchID: cursorID}
		cursor.CreatedAt = cursorAt
		start := sort.Search(len(matched), func(i int) bool { return newerThan(&cursor, &matched[i]) })
		matched = matched[start:]
	}

	var next *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.BatchID)
		next = &token
	}
	return matched, next, nil
}

func matches(b *domain.Batch, f portsrepo.BatchFilter) bool {
	if f.CreatedBy != "" && b.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.ExcludeDrafts && b.Status == domain.Draft {
		return false
	}
	return true
}

// newerThan orders by creation time descending, then ID descending.
func newerThan(a, b *domain.Batch) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.BatchID > b.BatchID
}

// RunInTx holds the write lock for the duration of fn.
func (r *BatchRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.BatchTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &batchTx{repo: r, staged: make(map[string]*domain.Batch)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, b := range tx.staged {
		if b == nil {
			delete(r.batches, id)
			continue
		}
		r.batches[id] = b
	}
	return nil
}

// batchTx reads through its staged writes. A nil staged entry marks a delete.
type batchTx struct {
	repo   *BatchRepository
	staged map[string]*domain.Batch
}

func (tx *batchTx) current(batchID string) (*domain.Batch, bool) {
	if b, ok := tx.staged[batchID]; ok {
		return b, b != nil
	}
	b, ok := tx.repo.batches[batchID]
	return b, ok
}

func (tx *batchTx) LoadBatchForUpdate(_ context.Context, batchID string) (*domain.Batch, error) {
	b, ok := tx.current(batchID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return b.Clone(), nil
}

func (tx *batchTx) CreateBatch(_ context.Context, batch domain.Batch) error {
	if _, exists := tx.current(batch.BatchID); exists {
		return fmt.Errorf("%w: batch %s", apperrors.ErrDuplicate, batch.BatchID)
	}
	for _, b := range tx.repo.batches {
		if b.BatchReference == batch.BatchReference {
			return fmt.Errorf("%w: batch reference %s", apperrors.ErrDuplicate, batch.BatchReference)
		}
	}
	tx.staged[batch.BatchID] = batch.Clone()
	return nil
}

func (tx *batchTx) SaveBatch(_ context.Context, batch domain.Batch, expectedVersion int64) error {
	stored, ok := tx.current(batch.BatchID)
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: expected version %d, found %d", apperrors.ErrConflict, expectedVersion, stored.Version)
	}
	seen := make(map[string]struct{}, len(batch.Items))
	for _, item := range batch.Items {
		if _, dup := seen[item.SequenceNumber]; dup {
			return fmt.Errorf("%w: sequence %s", apperrors.ErrDuplicate, item.SequenceNumber)
		}
		seen[item.SequenceNumber] = struct{}{}
	}
	tx.staged[batch.BatchID] = batch.Clone()
	return nil
}

func (tx *batchTx) DeleteBatch(_ context.Context, batchID string, expectedVersion int64) error {
	stored, ok := tx.current(batchID)
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: expected version %d, found %d", apperrors.ErrConflict, expectedVersion, stored.Version)
	}
	tx.staged[batchID] = nil
	return nil
}
