// Package eftfile encodes approved batches into the semicolon-delimited EFT
// wire format and validates files in that format.
package eftfile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	// Delimiter separates fields within a record.
	Delimiter = ';'
	// Escape precedes a literal delimiter, quote or escape character inside a field.
	Escape = '\\'

	HeaderRecordType = "0"
	BodyRecordType   = "1"

	HeaderFieldCount = 5
	BodyFieldCount   = 17

	maxBatchNameLength = 50
	maxPayeeNameLength = 55
)

// File is the result of encoding a batch.
type File struct {
	Content     string
	GeneratedAt time.Time
	TotalAmount decimal.Decimal
	RecordCount int
}

// Encode serializes an APPROVED or EXPORTED batch. Items must already carry
// their master data snapshot; the batch is not modified. The header carries
// the sum computed from the items, which may differ from the stored total by
// up to the reconciliation tolerance.
func Encode(batch *domain.Batch, now time.Time) (*File, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: nil batch", apperrors.ErrNotApproved)
	}
	if !batch.Status.IsEncodable() {
		return nil, fmt.Errorf("%w: status is %s", apperrors.ErrNotApproved, batch.Status)
	}
	if m := accounting.Verify(batch); m != nil {
		return nil, &apperrors.TotalsMismatchError{
			Stored:        m.StoredAmount,
			Computed:      m.ComputedAmount,
			Difference:    m.Difference(),
			StoredCount:   m.StoredCount,
			ComputedCount: m.ComputedCount,
		}
	}

	items := make([]domain.LineItem, len(batch.Items))
	copy(items, batch.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SequenceNumber < items[j].SequenceNumber
	})

	for i := range items {
		if missing := items[i].FirstMissingReference(); missing != "" {
			return nil, &apperrors.MissingFieldError{Sequence: items[i].SequenceNumber, Field: missing}
		}
	}

	totals := accounting.ComputeTotals(items)

	var sb strings.Builder
	writeRecord(&sb, []string{
		HeaderRecordType,
		truncate(batch.BatchName, maxBatchNameLength),
		batch.CurrencyCode,
		FormatAmount(totals.Amount),
		fmt.Sprintf("%04d", totals.Count),
	})
	for i := range items {
		writeRecord(&sb, bodyFields(batch.CurrencyCode, &items[i]))
	}

	return &File{
		Content:     sb.String(),
		GeneratedAt: now,
		TotalAmount: totals.Amount,
		RecordCount: totals.Count,
	}, nil
}

func bodyFields(currency string, item *domain.LineItem) []string {
	return []string{
		BodyRecordType,
		item.SequenceNumber,
		currency,
		item.DebitAccountNumber,
		item.ZoneCode,
		FormatAmount(item.Amount),
		truncate(item.PayeeName, maxPayeeNameLength),
		item.SchemeCode,
		"",
		"",
		item.PayeeCreditReference,
		item.PayeeBankCode,
		item.PayeeAccountNumber,
		"",
		"",
		item.ReferenceNumber,
		truncate(item.Narration, domain.MaxNarrationLength),
	}
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writeRecord(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(Delimiter)
		}
		sb.WriteString(escapeField(f))
	}
	sb.WriteByte('\n')
}

// escapeField makes f safe to place between delimiters. Line breaks cannot be
// represented inside a record and become spaces.
func escapeField(f string) string {
	if !strings.ContainsAny(f, "\\;\"\r\n") {
		return f
	}
	var sb strings.Builder
	sb.Grow(len(f) + 4)
	for _, r := range f {
		switch r {
		case Escape, Delimiter, '"':
			sb.WriteRune(Escape)
			sb.WriteRune(r)
		case '\r', '\n':
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
