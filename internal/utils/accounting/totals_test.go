package accounting_test

import (
	"testing"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchWithAmounts(amounts ...string) *domain.Batch {
	b := &domain.Batch{}
	for _, a := range amounts {
		b.Items = append(b.Items, domain.LineItem{Amount: decimal.RequireFromString(a)})
	}
	return b
}

func TestComputeTotals(t *testing.T) {
	totals := accounting.ComputeTotals(batchWithAmounts("100.00", "250.50").Items)
	assert.True(t, decimal.RequireFromString("350.50").Equal(totals.Amount))
	assert.Equal(t, 2, totals.Count)

	empty := accounting.ComputeTotals(nil)
	assert.True(t, empty.Amount.IsZero())
	assert.Equal(t, 0, empty.Count)
}

func TestRecomputeThenVerify(t *testing.T) {
	b := batchWithAmounts("10.10", "20.20", "30.30")
	accounting.Recompute(b)

	assert.Equal(t, 3, b.RecordCount)
	assert.Nil(t, accounting.Verify(b))
}

func TestVerify_Tolerance(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		wantNil bool
	}{
		{"exact", "350.50", true},
		{"off by one cent", "350.51", true},
		{"under by one cent", "350.49", true},
		{"off by two cents", "350.52", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := batchWithAmounts("100.00", "250.50")
			b.RecordCount = 2
			b.TotalAmount = decimal.RequireFromString(tc.stored)

			m := accounting.Verify(b)
			if tc.wantNil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.True(t, decimal.RequireFromString("0.02").Equal(m.Difference()))
		})
	}
}

func TestVerify_CountMustMatchExactly(t *testing.T) {
	b := batchWithAmounts("100.00")
	b.TotalAmount = decimal.RequireFromString("100.00")
	b.RecordCount = 2

	m := accounting.Verify(b)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.StoredCount)
	assert.Equal(t, 1, m.ComputedCount)
	assert.Contains(t, m.String(), "100.00/2")
}
