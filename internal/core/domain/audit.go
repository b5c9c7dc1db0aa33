package domain

import "time"

// AuditAction tags a lifecycle event.
type AuditAction string

const (
	ActionSubmitted AuditAction = "SUBMITTED"
	ActionApproved  AuditAction = "APPROVED"
	ActionRejected  AuditAction = "REJECTED"
	ActionExported  AuditAction = "EXPORTED"
)

// AuditEvent is an immutable record of a lifecycle transition.
type AuditEvent struct {
	AuditID        string      `json:"auditID"`
	BatchID        string      `json:"batchID"`
	BatchReference string      `json:"batchReference"`
	Action         AuditAction `json:"action"`
	ActorID        string      `json:"actorID"`
	Timestamp      time.Time   `json:"timestamp"`
	Remarks        *string     `json:"remarks,omitempty"`
	OriginAddress  *string     `json:"originAddress,omitempty"`
}
