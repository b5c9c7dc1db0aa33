package repositories

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// BatchFilter narrows a batch listing. Zero values mean "no restriction".
type BatchFilter struct {
	CreatedBy     string
	Status        domain.BatchStatus
	ExcludeDrafts bool
	Limit         int
	NextToken     *string
}

// BatchReader defines read operations for batch data outside a transaction.
type BatchReader interface {
	// FindBatchByID retrieves a batch with its line items ordered by sequence number.
	FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)

	// ListBatches returns batch headers (without items) newest first, and a token for the next page.
	ListBatches(ctx context.Context, filter BatchFilter) ([]domain.Batch, *string, error)
}

// BatchTx is the set of writes available inside a batch transaction.
type BatchTx interface {
	// LoadBatchForUpdate retrieves a batch with its items and holds it exclusively until the transaction ends.
	LoadBatchForUpdate(ctx context.Context, batchID string) (*domain.Batch, error)

	// CreateBatch inserts a new batch header.
	CreateBatch(ctx context.Context, batch domain.Batch) error

	// SaveBatch writes the batch header and synchronises its item set.
	// It fails with apperrors.ErrConflict when the stored version differs from expectedVersion.
	SaveBatch(ctx context.Context, batch domain.Batch, expectedVersion int64) error

	// DeleteBatch removes the batch and its items.
	DeleteBatch(ctx context.Context, batchID string, expectedVersion int64) error
}

// BatchRepositoryWithTx combines batch reads with transactional writes.
type BatchRepositoryWithTx interface {
	BatchReader
	TxRunner[BatchTx]
}
