package mapping

import (
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/models"
)

// ToModelAuditLog converts a domain AuditEvent to a model AuditLog
func ToModelAuditLog(d domain.AuditEvent) models.AuditLog {
	return models.AuditLog{
		AuditID:        d.AuditID,
		BatchID:        d.BatchID,
		BatchReference: d.BatchReference,
		Action:         string(d.Action),
		ActorID:        d.ActorID,
		Timestamp:      d.Timestamp,
		Remarks:        d.Remarks,
		OriginAddress:  d.OriginAddress,
	}
}

// ToDomainAuditEvent converts a model AuditLog to a domain AuditEvent
func ToDomainAuditEvent(m models.AuditLog) domain.AuditEvent {
	return domain.AuditEvent{
		AuditID:        m.AuditID,
		BatchID:        m.BatchID,
		BatchReference: m.BatchReference,
		Action:         domain.AuditAction(m.Action),
		ActorID:        m.ActorID,
		Timestamp:      m.Timestamp,
		Remarks:        m.Remarks,
		OriginAddress:  m.OriginAddress,
	}
}
