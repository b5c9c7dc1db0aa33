package accounting

import (
	"fmt"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest absolute difference between a stored and a
// recomputed total that still counts as reconciled.
var Tolerance = decimal.New(1, -2)

// Totals is the sum and count derived from a set of line items.
type Totals struct {
	Amount decimal.Decimal
	Count  int
}

// ComputeTotals sums item amounts and counts items.
func ComputeTotals(items []domain.LineItem) Totals {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return Totals{Amount: sum, Count: len(items)}
}

// Recompute overwrites the batch's stored totals with values derived from its items.
func Recompute(b *domain.Batch) {
	t := ComputeTotals(b.Items)
	b.TotalAmount = t.Amount
	b.RecordCount = t.Count
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Mismatch describes a failed reconciliation between stored and computed totals.
type Mismatch struct {
	StoredAmount   decimal.Decimal
	ComputedAmount decimal.Decimal
	StoredCount    int
	ComputedCount  int
}

// Difference is stored minus computed.
func (m *Mismatch) Difference() decimal.Decimal {
	return m.StoredAmount.Sub(m.ComputedAmount)
}

func (m *Mismatch) String() string {
	return fmt.Sprintf("stored %s/%d, computed %s/%d",
		m.StoredAmount.StringFixed(2), m.StoredCount, m.ComputedAmount.StringFixed(2), m.ComputedCount)
}

// Verify checks the batch's stored totals against its items. The count must
// match exactly; the amount may drift by up to Tolerance. A nil result means
// the batch reconciles.
func Verify(b *domain.Batch) *Mismatch {
	t := ComputeTotals(b.Items)
	if t.Count == b.RecordCount && WithinTolerance(b.TotalAmount, t.Amount) {
		return nil
	}
	return &Mismatch{
		StoredAmount:   b.TotalAmount,
		ComputedAmount: t.Amount,
		StoredCount:    b.RecordCount,
		ComputedCount:  t.Count,
	}
}
