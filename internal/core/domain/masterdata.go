package domain

// Bank is a payee bank identified by its SWIFT / routing code.
type Bank struct {
	BankID    string `json:"bankID"`
	BankName  string `json:"bankName"`
	SwiftCode string `json:"swiftCode"`
	IsActive  bool   `json:"isActive"`
}

// Zone is an organizational grouping attached to schemes.
type Zone struct {
	ZoneID   string `json:"zoneID"`
	ZoneCode string `json:"zoneCode"`
	ZoneName string `json:"zoneName"`
	IsActive bool   `json:"isActive"`
}

// Scheme is a payment category mapped to one zone and a default cost center.
type Scheme struct {
	SchemeID          string `json:"schemeID"`
	SchemeCode        string `json:"schemeCode"`
	SchemeName        string `json:"schemeName"`
	ZoneID            string `json:"zoneID"`
	DefaultCostCenter string `json:"defaultCostCenter"`
	IsActive          bool   `json:"isActive"`
}

// Supplier is a payee with its bank account details.
type Supplier struct {
	SupplierID      string `json:"supplierID"`
	SupplierCode    string `json:"supplierCode"`
	SupplierName    string `json:"supplierName"`
	BankID          string `json:"bankID"`
	AccountNumber   string `json:"accountNumber"`
	AccountName     string `json:"accountName"`
	CreditReference string `json:"creditReference"`
	CostCenter      string `json:"costCenter"`
	IsActive        bool   `json:"isActive"`
}

// DebitAccount is an account payments are drawn from.
type DebitAccount struct {
	DebitAccountID string `json:"debitAccountID"`
	AccountNumber  string `json:"accountNumber"`
	AccountName    string `json:"accountName"`
	IsActive       bool   `json:"isActive"`
}

// SchemeDetails is a scheme together with its resolved zone.
type SchemeDetails struct {
	Scheme Scheme `json:"scheme"`
	Zone   *Zone  `json:"zone,omitempty"`
}

// SupplierDetails is a supplier together with its resolved bank.
type SupplierDetails struct {
	Supplier Supplier `json:"supplier"`
	Bank     *Bank    `json:"bank,omitempty"`
}
