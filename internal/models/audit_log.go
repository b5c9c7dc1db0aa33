package models

import "time"

// AuditLog is the row shape of the append-only audit_logs table.
type AuditLog struct {
	AuditID        string    `db:"audit_id"`
	BatchID        string    `db:"batch_id"`
	BatchReference string    `db:"batch_reference"`
	Action         string    `db:"action"`
	ActorID        string    `db:"actor_id"`
	Timestamp      time.Time `db:"timestamp"`
	Remarks        *string   `db:"remarks"`
	OriginAddress  *string   `db:"origin_address"`
}
