package dto

import "github.com/shopspring/decimal"

// ValidateFileRequest carries EFT file content submitted as JSON.
// Multipart uploads use the "file" form field instead.
type ValidateFileRequest struct {
	Content string `json:"content" binding:"required"`
}

// ValidateFileResponse reports the outcome of a structural check.
type ValidateFileResponse struct {
	Valid        bool             `json:"valid"`
	Message      string           `json:"message"`
	BatchName    string           `json:"batchName,omitempty"`
	CurrencyCode string           `json:"currencyCode,omitempty"`
	TotalAmount  *decimal.Decimal `json:"totalAmount,omitempty"`
	RecordCount  *int             `json:"recordCount,omitempty"`
	Line         *int             `json:"line,omitempty"`
}

// ExportedFile is an encoded batch ready to hand to the transport layer.
type ExportedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
