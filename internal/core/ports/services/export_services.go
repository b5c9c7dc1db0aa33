package services

import (
	"context"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	"github.com/SscSPs/eft_batch_service/internal/dto"
)

// GeneratedFile is the snapshot persisted on a batch after encoding.
type GeneratedFile struct {
	Content     string
	GeneratedAt time.Time
	Remarks     string
}

// SummaryFormat selects the layout of a batch summary export.
type SummaryFormat string

const (
	SummaryCSV  SummaryFormat = "csv"
	SummaryXLSX SummaryFormat = "xlsx"
)

// ExportSvc produces EFT files and spreadsheet summaries.
type ExportSvc interface {
	// ExportBatch encodes an APPROVED or EXPORTED batch and records the export.
	ExportBatch(ctx context.Context, actor domain.Actor, batchID string, format eftfile.Format) (*dto.ExportedFile, error)

	// ValidateFile checks externally supplied EFT content.
	ValidateFile(ctx context.Context, content string) (*eftfile.Summary, error)

	// ExportBatchSummary lists the actor's own batches as CSV or XLSX.
	ExportBatchSummary(ctx context.Context, actor domain.Actor, format SummaryFormat) (*dto.ExportedFile, error)
}
