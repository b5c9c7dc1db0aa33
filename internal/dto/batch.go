package dto

import (
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest defines the data needed to open a new DRAFT batch.
type CreateBatchRequest struct {
	BatchName     string `json:"batchName" binding:"required,max=100"`
	FileReference string `json:"fileReference" binding:"omitempty,max=16"` // Defaults to <prefix>-dd.mm.yyyy
	CurrencyCode  string `json:"currencyCode" binding:"omitempty,len=3,alpha"`
}

// UpdateBatchRequest changes the descriptive fields of a DRAFT batch.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBatchRequest struct {
	BatchName     *string `json:"batchName" binding:"omitempty,min=1,max=100"`
	FileReference *string `json:"fileReference" binding:"omitempty,min=1,max=16"`
}

// ApproveBatchRequest carries the authorizer's optional remarks.
type ApproveBatchRequest struct {
	Remarks string `json:"remarks" binding:"max=500"`
}

// RejectBatchRequest carries the mandatory rejection reason.
type RejectBatchRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListBatchesParams defines query parameters for listing batches.
type ListBatchesParams struct {
	Scope     string  `form:"scope" binding:"omitempty,oneof=mine review"`
	Status    string  `form:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED REJECTED EXPORTED"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// BatchResponse defines the data returned for a batch header.
type BatchResponse struct {
	BatchID         string             `json:"batchID"`
	BatchReference  string             `json:"batchReference"`
	BatchName       string             `json:"batchName"`
	FileReference   string             `json:"fileReference"`
	CurrencyCode    string             `json:"currencyCode"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	RecordCount     int                `json:"recordCount"`
	Status          domain.BatchStatus `json:"status"`
	ApprovedBy      *string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	RejectedBy      *string            `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time         `json:"rejectedAt,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	GeneratedAt     *time.Time         `json:"generatedAt,omitempty"`
	Version         int64              `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// GetBatchResponse combines a batch header with its line items.
type GetBatchResponse struct {
	Batch BatchResponse      `json:"batch"`
	Items []LineItemResponse `json:"items"`
}

// ListBatchesResponse is one page of batch headers.
type ListBatchesResponse struct {
	Batches   []BatchResponse `json:"batches"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToBatchResponse converts a domain.Batch to BatchResponse DTO.
func ToBatchResponse(b *domain.Batch) BatchResponse {
	return BatchResponse{
		BatchID:         b.BatchID,
		BatchReference:  b.BatchReference,
		BatchName:       b.BatchName,
		FileReference:   b.FileReference,
		CurrencyCode:    b.CurrencyCode,
		TotalAmount:     b.TotalAmount,
		RecordCount:     b.RecordCount,
		Status:          b.Status,
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      b.ApprovedAt,
		RejectedBy:      b.RejectedBy,
		RejectedAt:      b.RejectedAt,
		RejectionReason: b.RejectionReason,
		GeneratedAt:     b.GeneratedAt,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		CreatedBy:       b.CreatedBy,
		LastUpdatedAt:   b.LastUpdatedAt,
		LastUpdatedBy:   b.LastUpdatedBy,
	}
}

// ToGetBatchResponse converts a batch and its items.
func ToGetBatchResponse(b *domain.Batch) GetBatchResponse {
	return GetBatchResponse{
		Batch: ToBatchResponse(b),
		Items: ToLineItemResponses(b.Items),
	}
}

// ToBatchResponses converts a slice of domain.Batch to []BatchResponse.
func ToBatchResponses(batches []domain.Batch) []BatchResponse {
	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToBatchResponse(&batches[i])
	}
	return responses
}
