package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/platform/metrics"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	summarySheetName = "Batches"
	summaryPageSize  = 100
)

var summaryColumns = []string{"Batch Reference", "Batch Name", "Status", "Records", "Total Amount", "Currency", "Created At", "Last Updated At"}

// exportService turns approved batches into EFT files and validates external files.
type exportService struct {
	BaseService
	batches        portssvc.BatchSvcFacade
	metrics        *metrics.Metrics
	clock          func() time.Time
	filenamePrefix string
}

// NewExportService creates the export service on top of the batch ledger.
func NewExportService(batches portssvc.BatchSvcFacade, policy domain.RolePolicy, m *metrics.Metrics, filenamePrefix string, clock func() time.Time) portssvc.ExportSvc {
	if clock == nil {
		clock = time.Now
	}
	return &exportService{
		BaseService:    BaseService{Policy: policy},
		batches:        batches,
		metrics:        m,
		clock:          clock,
		filenamePrefix: filenamePrefix,
	}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

// ExportBatch encodes the batch and records the export on it. The status
// check and the version check in MarkExported guard against a concurrent change
// between the read and the write.
func (s *exportService) ExportBatch(ctx context.Context, actor domain.Actor, batchID string, format eftfile.Format) (*dto.ExportedFile, error) {
	if err := s.Authorize(ctx, actor, domain.PermExportBatch); err != nil {
		return nil, err
	}
	b, err := s.batches.GetBatch(ctx, actor, batchID)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	file, err := eftfile.Encode(b, now)
	if err != nil {
		s.LogOutcome(ctx, err, "Failed to encode batch", slog.String("batch_id", batchID))
		return nil, err
	}

	_, err = s.batches.MarkExported(ctx, actor, batchID, portssvc.GeneratedFile{
		Content:     file.Content,
		GeneratedAt: file.GeneratedAt,
		Remarks:     format.AuditRemarks(),
	}, b.Version)
	if err != nil {
		return nil, err
	}
	s.metrics.IncFileGenerated(string(format))

	s.GetLogger(ctx).Info("EFT file generated",
		slog.String("batch_id", batchID),
		slog.String("format", string(format)),
		slog.Int("record_count", file.RecordCount),
		slog.String("total_amount", file.TotalAmount.StringFixed(2)))

	return &dto.ExportedFile{
		Filename:    eftfile.Filename(s.filenamePrefix, b.BatchReference, now, format),
		ContentType: format.ContentType(),
		Content:     []byte(file.Content),
	}, nil
}

// ValidateFile checks the structure of EFT content. It never touches storage.
func (s *exportService) ValidateFile(ctx context.Context, content string) (*eftfile.Summary, error) {
	summary, err := eftfile.Validate(content)
	s.metrics.IncFileValidation(validationResult(err))
	if err != nil {
		s.GetLogger(ctx).Info("EFT file rejected", slog.String("reason", err.Error()))
		return nil, err
	}
	return summary, nil
}

func validationResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, apperrors.ErrEmptyFile):
		return "empty_file"
	case errors.Is(err, apperrors.ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, apperrors.ErrRecordCountMismatch):
		return "record_count_mismatch"
	case errors.Is(err, apperrors.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrTotalAmountMismatch):
		return "total_amount_mismatch"
	}
	return "error"
}

// ExportBatchSummary lists every batch the actor created as a spreadsheet.
func (s *exportService) ExportBatchSummary(ctx context.Context, actor domain.Actor, format portssvc.SummaryFormat) (*dto.ExportedFile, error) {
	rows, err := s.collectSummaryRows(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	name := fmt.Sprintf("%s_batches_%s.%s", s.filenamePrefix, now.Format("20060102_150405"), format)

	var (
		content     []byte
		contentType string
	)
	switch format {
	case portssvc.SummaryCSV:
		content, err = writeSummaryCSV(rows)
		contentType = "text/csv; charset=utf-8"
	case portssvc.SummaryXLSX:
		content, err = writeSummaryXLSX(rows)
		contentType = xlsxContentType
	default:
		return nil, apperrors.NewValidationError("format", "must be csv or xlsx")
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to write batch summary", slog.String("format", string(format)))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return &dto.ExportedFile{Filename: name, ContentType: contentType, Content: content}, nil
}

func (s *exportService) collectSummaryRows(ctx context.Context, actor domain.Actor) ([][]string, error) {
	var (
		rows [][]string
		next *string
	)
	for {
		page, err := s.batches.ListBatches(ctx, actor, dto.ListBatchesParams{Scope: "mine", Limit: summaryPageSize, NextToken: next})
		if err != nil {
			return nil, err
		}
		for _, b := range page.Batches {
			rows = append(rows, []string{
				b.BatchReference,
				b.BatchName,
				string(b.Status),
				strconv.Itoa(b.RecordCount),
				b.TotalAmount.StringFixed(2),
				b.CurrencyCode,
				b.CreatedAt.UTC().Format(time.RFC3339),
				b.LastUpdatedAt.UTC().Format(time.RFC3339),
			})
		}
		if page.NextToken == nil {
			return rows, nil
		}
		next = page.NextToken
	}
}

func writeSummaryCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(summaryColumns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummaryXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheetName); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(summaryColumns))
	for i, c := range summaryColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(summarySheetName, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(summarySheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
