package dto

import (
	"time"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// AuditEventResponse defines the data returned for one audit trail entry.
type AuditEventResponse struct {
	AuditID        string             `json:"auditID"`
	BatchReference string             `json:"batchReference"`
	Action         domain.AuditAction `json:"action"`
	ActorID        string             `json:"actorID"`
	Timestamp      time.Time          `json:"timestamp"`
	Remarks        *string            `json:"remarks,omitempty"`
	OriginAddress  *string            `json:"originAddress,omitempty"`
}

// ToAuditEventResponses converts audit events, keeping their order.
func ToAuditEventResponses(events []domain.AuditEvent) []AuditEventResponse {
	responses := make([]AuditEventResponse, len(events))
	for i, e := range events {
		responses[i] = AuditEventResponse{
			AuditID:        e.AuditID,
			BatchReference: e.BatchReference,
			Action:         e.Action,
			ActorID:        e.ActorID,
			Timestamp:      e.Timestamp,
			Remarks:        e.Remarks,
			OriginAddress:  e.OriginAddress,
		}
	}
	return responses
}
