package dto

import (
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddLineItemRequest defines the data needed to append a payment to a DRAFT batch.
// Zone and cost center are derived from the scheme when omitted.
type AddLineItemRequest struct {
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"250.50"`
	DebitAccountID  string          `json:"debitAccountID"`
	PayeeID         string          `json:"payeeID"`
	SchemeID        string          `json:"schemeID"`
	ZoneID          *string         `json:"zoneID"`
	Narration       string          `json:"narration" binding:"max=200"`
	ReferenceNumber string          `json:"referenceNumber" binding:"max=16"`
	EmployeeNumber  string          `json:"employeeNumber" binding:"max=6"`
	NationalID      string          `json:"nationalID" binding:"max=8"`
	CostCenter      *string         `json:"costCenter" binding:"omitempty,max=50"`
	SourceReference string          `json:"sourceReference" binding:"max=18"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID           string          `json:"lineItemID"`
	SequenceNumber       string          `json:"sequenceNumber"`
	Amount               decimal.Decimal `json:"amount"`
	DebitAccountID       string          `json:"debitAccountID"`
	DebitAccountNumber   string          `json:"debitAccountNumber"`
	PayeeID              string          `json:"payeeID"`
	PayeeName            string          `json:"payeeName"`
	PayeeAccountNumber   string          `json:"payeeAccountNumber"`
	PayeeCreditReference string          `json:"payeeCreditReference,omitempty"`
	PayeeBankID          string          `json:"payeeBankID"`
	PayeeBankCode        string          `json:"payeeBankCode"`
	SchemeID             string          `json:"schemeID"`
	SchemeCode           string          `json:"schemeCode"`
	ZoneID               string          `json:"zoneID"`
	ZoneCode             string          `json:"zoneCode"`
	Narration            string          `json:"narration"`
	ReferenceNumber      string          `json:"referenceNumber,omitempty"`
	EmployeeNumber       string          `json:"employeeNumber,omitempty"`
	NationalID           string          `json:"nationalID,omitempty"`
	CostCenter           string          `json:"costCenter,omitempty"`
	SourceReference      string          `json:"sourceReference,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// LineItemMutationResponse is returned after adding or removing an item.
type LineItemMutationResponse struct {
	Item        *LineItemResponse `json:"item,omitempty"`
	TotalAmount decimal.Decimal   `json:"batchTotal"`
	RecordCount int               `json:"recordCount"`
	Version     int64             `json:"version"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:           li.LineItemID,
		SequenceNumber:       li.SequenceNumber,
		Amount:               li.Amount,
		DebitAccountID:       li.DebitAccountID,
		DebitAccountNumber:   li.DebitAccountNumber,
		PayeeID:              li.PayeeID,
		PayeeName:            li.PayeeName,
		PayeeAccountNumber:   li.PayeeAccountNumber,
		PayeeCreditReference: li.PayeeCreditReference,
		PayeeBankID:          li.PayeeBankID,
		PayeeBankCode:        li.PayeeBankCode,
		SchemeID:             li.SchemeID,
		SchemeCode:           li.SchemeCode,
		ZoneID:               li.ZoneID,
		ZoneCode:             li.ZoneCode,
		Narration:            li.Narration,
		ReferenceNumber:      li.ReferenceNumber,
		EmployeeNumber:       li.EmployeeNumber,
		NationalID:           li.NationalID,
		CostCenter:           li.CostCenter,
		SourceReference:      li.SourceReference,
		CreatedAt:            li.CreatedAt,
		CreatedBy:            li.CreatedBy,
	}
}

// ToLineItemResponses converts a slice of domain.LineItem to []LineItemResponse.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i := range items {
		responses[i] = ToLineItemResponse(&items[i])
	}
	return responses
}
