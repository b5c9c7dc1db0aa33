package dto

import "github.com/SscSPs/eft_batch_service/internal/core/domain"

// SchemeDetailsResponse is what the item form needs after picking a scheme.
type SchemeDetailsResponse struct {
	SchemeID          string `json:"schemeID"`
	SchemeCode        string `json:"schemeCode"`
	SchemeName        string `json:"schemeName"`
	ZoneID            string `json:"zoneID,omitempty"`
	ZoneCode          string `json:"zoneCode,omitempty"`
	ZoneName          string `json:"zoneName,omitempty"`
	DefaultCostCenter string `json:"defaultCostCenter,omitempty"`
}

// SupplierDetailsResponse is what the item form needs after picking a payee.
type SupplierDetailsResponse struct {
	SupplierID      string `json:"supplierID"`
	SupplierCode    string `json:"supplierCode"`
	SupplierName    string `json:"supplierName"`
	AccountNumber   string `json:"accountNumber"`
	AccountName     string `json:"accountName"`
	CreditReference string `json:"creditReference,omitempty"`
	CostCenter      string `json:"costCenter,omitempty"`
	BankID          string `json:"bankID,omitempty"`
	BankName        string `json:"bankName,omitempty"`
	SwiftCode       string `json:"swiftCode,omitempty"`
}

// DebitAccountResponse describes a debit account.
type DebitAccountResponse struct {
	DebitAccountID string `json:"debitAccountID"`
	AccountNumber  string `json:"accountNumber"`
	AccountName    string `json:"accountName"`
}

// ToSchemeDetailsResponse flattens a scheme and its zone.
func ToSchemeDetailsResponse(d *domain.SchemeDetails) SchemeDetailsResponse {
	r := SchemeDetailsResponse{
		SchemeID:          d.Scheme.SchemeID,
		SchemeCode:        d.Scheme.SchemeCode,
		SchemeName:        d.Scheme.SchemeName,
		DefaultCostCenter: d.Scheme.DefaultCostCenter,
	}
	if d.Zone != nil {
		r.ZoneID = d.Zone.ZoneID
		r.ZoneCode = d.Zone.ZoneCode
		r.ZoneName = d.Zone.ZoneName
	}
	return r
}

// ToSupplierDetailsResponse flattens a supplier and its bank.
func ToSupplierDetailsResponse(d *domain.SupplierDetails) SupplierDetailsResponse {
	r := SupplierDetailsResponse{
		SupplierID:      d.Supplier.SupplierID,
		SupplierCode:    d.Supplier.SupplierCode,
		SupplierName:    d.Supplier.SupplierName,
		AccountNumber:   d.Supplier.AccountNumber,
		AccountName:     d.Supplier.AccountName,
		CreditReference: d.Supplier.CreditReference,
		CostCenter:      d.Supplier.CostCenter,
	}
	if d.Bank != nil {
		r.BankID = d.Bank.BankID
		r.BankName = d.Bank.BankName
		r.SwiftCode = d.Bank.SwiftCode
	}
	return r
}

// ToDebitAccountResponse converts a domain.DebitAccount.
func ToDebitAccountResponse(a *domain.DebitAccount) DebitAccountResponse {
	return DebitAccountResponse{
		DebitAccountID: a.DebitAccountID,
		AccountNumber:  a.AccountNumber,
		AccountName:    a.AccountName,
	}
}
