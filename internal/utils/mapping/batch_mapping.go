package mapping

import (
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/models"
)

// ToModelBatch converts a domain Batch header to a model Batch. Items are mapped separately.
func ToModelBatch(d domain.Batch) models.Batch {
	return models.Batch{
		BatchID:         d.BatchID,
		BatchReference:  d.BatchReference,
		BatchName:       d.BatchName,
		FileReference:   d.FileReference,
		CurrencyCode:    d.CurrencyCode,
		TotalAmount:     d.TotalAmount,
		RecordCount:     d.RecordCount,
		Status:          string(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		GeneratedFile:   d.GeneratedFile,
		GeneratedAt:     d.GeneratedAt,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a model Batch and its items to a domain Batch
func ToDomainBatch(m models.Batch, items []models.LineItem) domain.Batch {
	return domain.Batch{
		BatchID:         m.BatchID,
		BatchReference:  m.BatchReference,
		BatchName:       m.BatchName,
		FileReference:   m.FileReference,
		CurrencyCode:    m.CurrencyCode,
		TotalAmount:     m.TotalAmount,
		RecordCount:     m.RecordCount,
		Status:          domain.BatchStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		GeneratedFile:   m.GeneratedFile,
		GeneratedAt:     m.GeneratedAt,
		Version:         m.Version,
		Items:           ToDomainLineItemSlice(items),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:           d.LineItemID,
		BatchID:              d.BatchID,
		SequenceNumber:       d.SequenceNumber,
		Amount:               d.Amount,
		DebitAccountID:       d.DebitAccountID,
		PayeeID:              d.PayeeID,
		PayeeBankID:          d.PayeeBankID,
		SchemeID:             d.SchemeID,
		ZoneID:               d.ZoneID,
		Narration:            d.Narration,
		ReferenceNumber:      d.ReferenceNumber,
		EmployeeNumber:       d.EmployeeNumber,
		NationalID:           d.NationalID,
		CostCenter:           d.CostCenter,
		SourceReference:      d.SourceReference,
		DebitAccountNumber:   d.DebitAccountNumber,
		PayeeName:            d.PayeeName,
		PayeeAccountNumber:   d.PayeeAccountNumber,
		PayeeCreditReference: d.PayeeCreditReference,
		PayeeBankCode:        d.PayeeBankCode,
		SchemeCode:           d.SchemeCode,
		ZoneCode:             d.ZoneCode,
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:           m.LineItemID,
		BatchID:              m.BatchID,
		SequenceNumber:       m.SequenceNumber,
		Amount:               m.Amount,
		DebitAccountID:       m.DebitAccountID,
		PayeeID:              m.PayeeID,
		PayeeBankID:          m.PayeeBankID,
		SchemeID:             m.SchemeID,
		ZoneID:               m.ZoneID,
		Narration:            m.Narration,
		ReferenceNumber:      m.ReferenceNumber,
		EmployeeNumber:       m.EmployeeNumber,
		NationalID:           m.NationalID,
		CostCenter:           m.CostCenter,
		SourceReference:      m.SourceReference,
		DebitAccountNumber:   m.DebitAccountNumber,
		PayeeName:            m.PayeeName,
		PayeeAccountNumber:   m.PayeeAccountNumber,
		PayeeCreditReference: m.PayeeCreditReference,
		PayeeBankCode:        m.PayeeBankCode,
		SchemeCode:           m.SchemeCode,
		ZoneCode:             m.ZoneCode,
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}

// ToDomainLineItemSlice converts model line items to domain line items
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	if ms == nil {
		return nil
	}
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
