package services

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/dto"
)

// BatchReaderSvc defines read operations for batch data.
type BatchReaderSvc interface {
	// GetBatch retrieves a batch with its line items. Only the creator and actors allowed to approve may see it.
	GetBatch(ctx context.Context, actor domain.Actor, batchID string) (*domain.Batch, error)

	// ListBatches returns one page of batches visible to the actor.
	ListBatches(ctx context.Context, actor domain.Actor, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error)

	// ListAuditTrail returns the batch's audit events, newest first.
	ListAuditTrail(ctx context.Context, actor domain.Actor, batchID string) ([]domain.AuditEvent, error)
}

// BatchPreparerSvc defines the preparer-facing lifecycle operations. All of
// them are limited to the batch creator and to DRAFT batches.
// expectedVersion, when non-nil, must equal the stored version or the call fails with a conflict.
type BatchPreparerSvc interface {
	CreateBatch(ctx context.Context, actor domain.Actor, req dto.CreateBatchRequest) (*domain.Batch, error)
	UpdateBatch(ctx context.Context, actor domain.Actor, batchID string, req dto.UpdateBatchRequest, expectedVersion *int64) (*domain.Batch, error)
	AddItem(ctx context.Context, actor domain.Actor, batchID string, req dto.AddLineItemRequest, expectedVersion *int64) (*domain.Batch, *domain.LineItem, error)
	RemoveItem(ctx context.Context, actor domain.Actor, batchID, lineItemID string, expectedVersion *int64) (*domain.Batch, error)
	Submit(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) (*domain.Batch, error)
	DeleteBatch(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) error
}

// BatchAuthorizerSvc defines the authorizer-facing decisions.
type BatchAuthorizerSvc interface {
	Approve(ctx context.Context, actor domain.Actor, batchID, remarks string, expectedVersion *int64) (*domain.Batch, error)
	Reject(ctx context.Context, actor domain.Actor, batchID, reason string, expectedVersion *int64) (*domain.Batch, error)
}

// BatchExporterSvc records that an encoded file was produced.
type BatchExporterSvc interface {
	// MarkExported persists the generated file and moves APPROVED to EXPORTED.
	// An EXPORTED batch keeps its status and only gets the new snapshot.
	MarkExported(ctx context.Context, actor domain.Actor, batchID string, file GeneratedFile, expectedVersion int64) (*domain.Batch, error)
}

// BatchSvcFacade combines all batch-related service interfaces.
type BatchSvcFacade interface {
	BatchReaderSvc
	BatchPreparerSvc
	BatchAuthorizerSvc
	BatchExporterSvc
}
