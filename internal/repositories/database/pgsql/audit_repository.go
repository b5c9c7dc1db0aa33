package pgsql

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/SscSPs/eft_batch_service/internal/models"
	"github.com/SscSPs/eft_batch_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// AppendAuditLog inserts one event. Rows are never updated or deleted.
func (r *PgxAuditLogRepository) AppendAuditLog(ctx context.Context, event domain.AuditEvent) error {
	m := mapping.ToModelAuditLog(event)
	query := `
		INSERT INTO audit_logs (audit_id, batch_id, batch_reference, action, actor_id, "timestamp", remarks, origin_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AuditID,
		m.BatchID,
		m.BatchReference,
		m.Action,
		m.ActorID,
		m.Timestamp,
		m.Remarks,
		m.OriginAddress,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+m.AuditID, err)
	}
	return nil
}

// ListAuditLogsByBatch returns the batch's events newest first. Events with
// the same timestamp come back in reverse insertion order.
func (r *PgxAuditLogRepository) ListAuditLogsByBatch(ctx context.Context, batchID string) ([]domain.AuditEvent, error) {
	query := `
		SELECT audit_id, batch_id, batch_reference, action, actor_id, "timestamp", remarks, origin_address
		FROM audit_logs
		WHERE batch_id = $1
		ORDER BY "timestamp" DESC, seq DESC;
	`
	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs for batch "+batchID, err)
	}
	defer rows.Close()

	events := make([]domain.AuditEvent, 0)
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.AuditID,
			&m.BatchID,
			&m.BatchReference,
			&m.Action,
			&m.ActorID,
			&m.Timestamp,
			&m.Remarks,
			&m.OriginAddress,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row for batch "+batchID, err)
		}
		events = append(events, mapping.ToDomainAuditEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows for batch "+batchID, err)
	}
	return events, nil
}
