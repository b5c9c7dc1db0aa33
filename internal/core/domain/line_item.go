package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field length limits for line items.
const (
	MaxNarrationLength       = 200
	MaxReferenceNumberLength = 16
	MaxEmployeeNumberLength  = 6
	MaxNationalIDLength      = 8
	MaxCostCenterLength      = 50
	MaxSourceReferenceLength = 18
)

// LineItem is a single payee payment instruction within a batch.
//
// The reference IDs point at master data; the snapshot fields freeze the values
// resolved from that master data when the item was added, so the exported file
// always matches what was approved.
type LineItem struct {
	LineItemID     string          `json:"lineItemID"` // Primary Key (UUID)
	BatchID        string          `json:"batchID"`    // FK -> Batch.batchID
	SequenceNumber string          `json:"sequenceNumber"`
	Amount         decimal.Decimal `json:"amount"` // Strictly positive, two decimals

	DebitAccountID string `json:"debitAccountID"`
	PayeeID        string `json:"payeeID"`
	PayeeBankID    string `json:"payeeBankID"`
	SchemeID       string `json:"schemeID"`
	ZoneID         string `json:"zoneID"`

	Narration       string `json:"narration"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
	EmployeeNumber  string `json:"employeeNumber,omitempty"`
	NationalID      string `json:"nationalID,omitempty"`
	CostCenter      string `json:"costCenter,omitempty"`
	SourceReference string `json:"sourceReference,omitempty"`

	DebitAccountNumber   string `json:"debitAccountNumber"`
	PayeeName            string `json:"payeeName"`
	PayeeAccountNumber   string `json:"payeeAccountNumber"`
	PayeeCreditReference string `json:"payeeCreditReference,omitempty"`
	PayeeBankCode        string `json:"payeeBankCode"` // SWIFT / routing code
	SchemeCode           string `json:"schemeCode"`
	ZoneCode             string `json:"zoneCode"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// Clone returns a copy of the item.
func (li LineItem) Clone() LineItem {
	return li
}

// RequiredReference is a named reference every encodable line item must carry.
type RequiredReference struct {
	Name    string
	Present bool
}

// RequiredReferences lists the references an item needs, in reporting order.
func (li *LineItem) RequiredReferences() []RequiredReference {
	return []RequiredReference{
		{Name: "Debit account", Present: li.DebitAccountID != "" && li.DebitAccountNumber != ""},
		{Name: "Payee", Present: li.PayeeID != "" && li.PayeeName != ""},
		{Name: "Payee bank", Present: li.PayeeBankID != "" && li.PayeeBankCode != ""},
		{Name: "Scheme", Present: li.SchemeID != "" && li.SchemeCode != ""},
		{Name: "Zone", Present: li.ZoneID != "" && li.ZoneCode != ""},
	}
}

// FirstMissingReference returns the name of the first absent required reference, or "".
func (li *LineItem) FirstMissingReference() string {
	for _, ref := range li.RequiredReferences() {
		if !ref.Present {
			return ref.Name
		}
	}
	return ""
}
