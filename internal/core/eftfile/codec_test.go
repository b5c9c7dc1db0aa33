package eftfile_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	"github.com/SscSPs/eft_batch_service/internal/utils/accounting"
	"github.com/SscSPs/eft_batch_service/internal/utils/sequencing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func item(amount, payee string) domain.LineItem {
	return domain.LineItem{
		Amount:               decimal.RequireFromString(amount),
		DebitAccountID:       "da-1",
		DebitAccountNumber:   "1001234567",
		PayeeID:              "sup-1",
		PayeeName:            payee,
		PayeeAccountNumber:   "0099887766",
		PayeeCreditReference: "CR-77",
		PayeeBankID:          "bank-1",
		PayeeBankCode:        "NBMAMWMW",
		SchemeID:             "sch-1",
		SchemeCode:           "SCH01",
		ZoneID:               "zone-1",
		ZoneCode:             "ZN1",
		Narration:            "March payment",
		ReferenceNumber:      "INV-001",
	}
}

func approvedBatch(t *testing.T, name string, items ...domain.LineItem) *domain.Batch {
	t.Helper()
	b := &domain.Batch{
		BatchName:    name,
		CurrencyCode: "MWK",
		Status:       domain.Approved,
		Items:        items,
	}
	require.NoError(t, sequencing.Assign(b.Items))
	accounting.Recompute(b)
	return b
}

func TestEncode_ScenarioA(t *testing.T) {
	b := approvedBatch(t, "BatchA", item("100.00", "Acme Ltd"), item("250.50", "Beta Co"))

	f, err := eftfile.Encode(b, fixedNow)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(f.Content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0;BatchA;MWK;350.50;0002", lines[0])
	assert.Equal(t,
		"1;0001;MWK;1001234567;ZN1;100.00;Acme Ltd;SCH01;;;CR-77;NBMAMWMW;0099887766;;;INV-001;March payment",
		lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "1;0002;"))
	assert.True(t, strings.HasSuffix(f.Content, "\n"))
	assert.Equal(t, fixedNow, f.GeneratedAt)
	assert.Equal(t, 2, f.RecordCount)
}

func TestEncode_BodyOrderedBySequence(t *testing.T) {
	b := approvedBatch(t, "Ordered", item("1.00", "First"), item("2.00", "Second"))
	b.Items[0], b.Items[1] = b.Items[1], b.Items[0]

	f, err := eftfile.Encode(b, fixedNow)
	require.NoError(t, err)

	lines := strings.Split(f.Content, "\n")
	assert.Contains(t, lines[1], ";First;")
	assert.Contains(t, lines[2], ";Second;")
}

func TestEncode_RejectsUnapprovedStatuses(t *testing.T) {
	for _, status := range []domain.BatchStatus{domain.Draft, domain.Pending, domain.Rejected} {
		t.Run(string(status), func(t *testing.T) {
			b := approvedBatch(t, "B", item("10.00", "P"))
			b.Status = status
			_, err := eftfile.Encode(b, fixedNow)
			assert.ErrorIs(t, err, apperrors.ErrNotApproved)
		})
	}

	b := approvedBatch(t, "B", item("10.00", "P"))
	b.Status = domain.Exported
	_, err := eftfile.Encode(b, fixedNow)
	assert.NoError(t, err, "re-encoding an exported batch is allowed")
}

func TestEncode_TotalsMismatchCarriesDifference(t *testing.T) {
	b := approvedBatch(t, "B", item("100.00", "P"))
	b.TotalAmount = decimal.RequireFromString("100.02")

	_, err := eftfile.Encode(b, fixedNow)
	require.ErrorIs(t, err, apperrors.ErrTotalsMismatch)

	var tm *apperrors.TotalsMismatchError
	require.True(t, errors.As(err, &tm))
	assert.True(t, decimal.RequireFromString("0.02").Equal(tm.Difference))
}

func TestEncode_WithinToleranceEmitsComputedTotal(t *testing.T) {
	b := approvedBatch(t, "B", item("100.00", "P"))
	b.TotalAmount = decimal.RequireFromString("100.01")

	f, err := eftfile.Encode(b, fixedNow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.Content, "0;B;MWK;100.00;0001\n"))
}

func TestEncode_MissingFieldNamesFirstOffendingItem(t *testing.T) {
	second := item("5.00", "P2")
	second.ZoneID = ""
	third := item("6.00", "P3")
	third.PayeeBankCode = ""
	b := approvedBatch(t, "B", item("4.00", "P1"), second, third)

	_, err := eftfile.Encode(b, fixedNow)
	require.ErrorIs(t, err, apperrors.ErrMissingField)

	var mf *apperrors.MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, "0002", mf.Sequence)
	assert.Equal(t, "Zone", mf.Field)
	assert.Equal(t, "Zone is required for transaction 0002", err.Error())
}

func TestEncode_StatusCheckedBeforeTotals(t *testing.T) {
	b := approvedBatch(t, "B", item("1.00", "P"))
	b.Status = domain.Pending
	b.TotalAmount = decimal.RequireFromString("99.00")

	_, err := eftfile.Encode(b, fixedNow)
	assert.ErrorIs(t, err, apperrors.ErrNotApproved)
}

func TestEncode_TruncatesAndEscapes(t *testing.T) {
	it := item("1.00", strings.Repeat("x", 60))
	it.Narration = "rent; \"march\"\r\nC:\\path"
	b := approvedBatch(t, strings.Repeat("N", 70), it)

	f, err := eftfile.Encode(b, fixedNow)
	require.NoError(t, err)

	lines := strings.Split(f.Content, "\n")
	assert.Equal(t, "0;"+strings.Repeat("N", 50)+";MWK;1.00;0001", lines[0])
	assert.Contains(t, lines[1], ";"+strings.Repeat("x", 55)+";SCH01;")
	assert.True(t, strings.HasSuffix(lines[1], `;rent\; \"march\"  C:\\path`))

	s, err := eftfile.Validate(f.Content)
	require.NoError(t, err, "escaped delimiters must not change the field count")
	assert.Equal(t, 1, s.RecordCount)
}

func TestRoundTrip(t *testing.T) {
	b := approvedBatch(t, "Payroll; March",
		item("0.01", "A"), item("1234567.89", "B;C"), item("42.10", "D"))

	f, err := eftfile.Encode(b, fixedNow)
	require.NoError(t, err)

	s, err := eftfile.Validate(f.Content)
	require.NoError(t, err)
	assert.True(t, b.TotalAmount.Equal(s.TotalAmount))
	assert.Equal(t, b.RecordCount, s.RecordCount)
	assert.Equal(t, "Payroll; March", s.BatchName)
	assert.Equal(t, "MWK", s.CurrencyCode)
}

func TestFormatHelpers(t *testing.T) {
	f, err := eftfile.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, eftfile.FormatCSV, f)
	assert.Equal(t, "text/csv; charset=utf-8", f.ContentType())
	assert.Equal(t, "Exported as CSV", f.AuditRemarks())

	f, err = eftfile.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, eftfile.FormatTXT, f)
	assert.Equal(t, "text/plain; charset=utf-8", f.ContentType())

	_, err = eftfile.ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, "CRWB_EFT_CRWB-20250314-093000-abc123_20250314_093000.txt",
		eftfile.Filename("CRWB", "CRWB-20250314-093000-abc123", fixedNow, eftfile.FormatTXT))
}
