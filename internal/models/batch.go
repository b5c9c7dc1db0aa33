package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is the row shape of the batches table.
type Batch struct {
	BatchID         string          `db:"batch_id"`
	BatchReference  string          `db:"batch_reference"`
	BatchName       string          `db:"batch_name"`
	FileReference   string          `db:"file_reference"`
	CurrencyCode    string          `db:"currency_code"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	RecordCount     int             `db:"record_count"`
	Status          string          `db:"status"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	RejectedBy      *string         `db:"rejected_by"`
	RejectedAt      *time.Time      `db:"rejected_at"`
	RejectionReason *string         `db:"rejection_reason"`
	GeneratedFile   *string         `db:"generated_file"`
	GeneratedAt     *time.Time      `db:"generated_at"`
	Version         int64           `db:"version"`
	AuditFields
}

// LineItem is the row shape of the line_items table. Snapshot columns are
// filled once when the item is added and never refreshed from master data.
type LineItem struct {
	LineItemID           string          `db:"line_item_id"`
	BatchID              string          `db:"batch_id"`
	SequenceNumber       string          `db:"sequence_number"`
	Amount               decimal.Decimal `db:"amount"`
	DebitAccountID       string          `db:"debit_account_id"`
	PayeeID              string          `db:"payee_id"`
	PayeeBankID          string          `db:"payee_bank_id"`
	SchemeID             string          `db:"scheme_id"`
	ZoneID               string          `db:"zone_id"`
	Narration            string          `db:"narration"`
	ReferenceNumber      string          `db:"reference_number"`
	EmployeeNumber       string          `db:"employee_number"`
	NationalID           string          `db:"national_id"`
	CostCenter           string          `db:"cost_center"`
	SourceReference      string          `db:"source_reference"`
	DebitAccountNumber   string          `db:"debit_account_number"`
	PayeeName            string          `db:"payee_name"`
	PayeeAccountNumber   string          `db:"payee_account_number"`
	PayeeCreditReference string          `db:"payee_credit_reference"`
	PayeeBankCode        string          `db:"payee_bank_code"`
	SchemeCode           string          `db:"scheme_code"`
	ZoneCode             string          `db:"zone_code"`
	CreatedAt            time.Time       `db:"created_at"`
	CreatedBy            string          `db:"created_by"`
}
