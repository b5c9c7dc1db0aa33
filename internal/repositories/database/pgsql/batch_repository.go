package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/SscSPs/eft_batch_service/internal/models"
	"github.com/SscSPs/eft_batch_service/internal/utils/mapping"
	"github.com/SscSPs/eft_batch_service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxPageSize = 100

const batchColumns = `
	batch_id, batch_reference, batch_name, file_reference, currency_code,
	total_amount, record_count, status,
	approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
	generated_file, generated_at, version,
	created_at, created_by, last_updated_at, last_updated_by`

// Listings never carry the generated file.
const batchHeaderColumns = `
	batch_id, batch_reference, batch_name, file_reference, currency_code,
	total_amount, record_count, status,
	approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
	NULL::text, generated_at, version,
	created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `
	line_item_id, batch_id, sequence_number, amount,
	debit_account_id, payee_id, payee_bank_id, scheme_id, zone_id,
	narration, reference_number, employee_number, national_id, cost_center, source_reference,
	debit_account_number, payee_name, payee_account_number, payee_credit_reference,
	payee_bank_code, scheme_code, zone_code,
	created_at, created_by`

type PgxBatchRepository struct {
	BaseRepository
}

// newPgxBatchRepository creates a new repository for batches and their line items.
func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryWithTx {
	return &PgxBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBatchRepository implements portsrepo.BatchRepositoryWithTx
var _ portsrepo.BatchRepositoryWithTx = (*PgxBatchRepository)(nil)

func scanBatch(row pgx.Row) (models.Batch, error) {
	var m models.Batch
	err := row.Scan(
		&m.BatchID,
		&m.BatchReference,
		&m.BatchName,
		&m.FileReference,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.RecordCount,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.GeneratedFile,
		&m.GeneratedAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func loadLineItems(ctx context.Context, q querier, batchID string) ([]models.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE batch_id = $1 ORDER BY sequence_number;`
	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for batch "+batchID, err)
	}
	defer rows.Close()

	items := make([]models.LineItem, 0)
	for rows.Next() {
		var li models.LineItem
		err := rows.Scan(
			&li.LineItemID,
			&li.BatchID,
			&li.SequenceNumber,
			&li.Amount,
			&li.DebitAccountID,
			&li.PayeeID,
			&li.PayeeBankID,
			&li.SchemeID,
			&li.ZoneID,
			&li.Narration,
			&li.ReferenceNumber,
			&li.EmployeeNumber,
			&li.NationalID,
			&li.CostCenter,
			&li.SourceReference,
			&li.DebitAccountNumber,
			&li.PayeeName,
			&li.PayeeAccountNumber,
			&li.PayeeCreditReference,
			&li.PayeeBankCode,
			&li.SchemeCode,
			&li.ZoneCode,
			&li.CreatedAt,
			&li.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for batch "+batchID, err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for batch "+batchID, err)
	}
	return items, nil
}

// findBatch loads a batch and its items through q. forUpdate locks the header row.
func findBatch(ctx context.Context, q querier, batchID string, forUpdate bool) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE batch_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanBatch(q.QueryRow(ctx, query+";", batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, batchID)
		}
		return nil, apperrors.NewAppError(500, "failed to find batch "+batchID, err)
	}

	items, err := loadLineItems(ctx, q, batchID)
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBatch(m, items)
	return &b, nil
}

// FindBatchByID retrieves a batch with its line items ordered by sequence number.
func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	return findBatch(ctx, r.Pool, batchID, false)
}

// ListBatches retrieves a page of batch headers, newest first, using token-based pagination.
func (r *PgxBatchRepository) ListBatches(ctx context.Context, filter portsrepo.BatchFilter) ([]domain.Batch, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit, maxPageSize)
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CreatedBy != "" {
		conditions = append(conditions, "created_by = "+arg(filter.CreatedBy))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(string(filter.Status)))
	}
	if filter.ExcludeDrafts {
		conditions = append(conditions, "status <> "+arg(string(domain.Draft)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the cursor stable for equal timestamps.
		conditions = append(conditions, "(created_at, batch_id) < ("+arg(lastCreatedAt)+", "+arg(lastID)+")")
	}

	query := `SELECT ` + batchHeaderColumns + ` FROM batches`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, batch_id DESC LIMIT " + arg(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query batches", err)
	}
	defer rows.Close()

	results := make([]domain.Batch, 0, fetchLimit)
	for rows.Next() {
		m, err := scanBatch(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan batch row", err)
		}
		results = append(results, mapping.ToDomainBatch(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating batch rows", err)
	}

	var nextToken *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.BatchID)
		nextToken = &token
		results = results[:limit]
	}
	return results, nextToken, nil
}

// RunInTx runs fn inside a database transaction.
func (r *PgxBatchRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.BatchTx) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxBatchTx{tx: tx})
	})
}

// pgxBatchTx implements the batch writes on an open transaction.
type pgxBatchTx struct {
	tx pgx.Tx
}

func (t *pgxBatchTx) LoadBatchForUpdate(ctx context.Context, batchID string) (*domain.Batch, error) {
	return findBatch(ctx, t.tx, batchID, true)
}

func (t *pgxBatchTx) CreateBatch(ctx context.Context, batch domain.Batch) error {
	m := mapping.ToModelBatch(batch)
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := t.tx.Exec(ctx, query,
		m.BatchID,
		m.BatchReference,
		m.BatchName,
		m.FileReference,
		m.CurrencyCode,
		m.TotalAmount,
		m.RecordCount,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectedBy,
		m.RejectedAt,
		m.RejectionReason,
		m.GeneratedFile,
		m.GeneratedAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: batch %s", apperrors.ErrDuplicate, m.BatchReference)
		}
		return apperrors.NewAppError(500, "failed to insert batch "+m.BatchID, err)
	}
	return nil
}

// staleVersion tells a missing batch apart from a concurrent update.
func (t *pgxBatchTx) staleVersion(ctx context.Context, batchID string, expectedVersion int64) error {
	var current int64
	err := t.tx.QueryRow(ctx, `SELECT version FROM batches WHERE batch_id = $1;`, batchID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, batchID)
		}
		return apperrors.NewAppError(500, "failed to read version of batch "+batchID, err)
	}
	return fmt.Errorf("%w: expected version %d, found %d", apperrors.ErrConflict, expectedVersion, current)
}

func (t *pgxBatchTx) SaveBatch(ctx context.Context, batch domain.Batch, expectedVersion int64) error {
	m := mapping.ToModelBatch(batch)
	query := `
		UPDATE batches SET
			batch_name = $3, file_reference = $4, total_amount = $5, record_count = $6, status = $7,
			approved_by = $8, approved_at = $9, rejected_by = $10, rejected_at = $11, rejection_reason = $12,
			generated_file = $13, generated_at = $14, version = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE batch_id = $1 AND version = $2;
	`
	tag, err := t.tx.Exec(ctx, query,
		m.BatchID,
		expectedVersion,
		m.BatchName,
		m.FileReference,
		m.TotalAmount,
		m.RecordCount,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectedBy,
		m.RejectedAt,
		m.RejectionReason,
		m.GeneratedFile,
		m.GeneratedAt,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update batch "+m.BatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return t.staleVersion(ctx, m.BatchID, expectedVersion)
	}

	return t.syncLineItems(ctx, batch)
}

// syncLineItems makes the stored item set equal to batch.Items. Snapshot
// columns of existing items are left untouched; only the sequence may change.
func (t *pgxBatchTx) syncLineItems(ctx context.Context, batch domain.Batch) error {
	ids := make([]string, len(batch.Items))
	for i := range batch.Items {
		ids[i] = batch.Items[i].LineItemID
	}

	pb := &pgx.Batch{}
	pb.Queue(`DELETE FROM line_items WHERE batch_id = $1 AND NOT (line_item_id = ANY($2));`, batch.BatchID, ids)

	upsert := `
		INSERT INTO line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (line_item_id) DO UPDATE SET sequence_number = EXCLUDED.sequence_number;
	`
	for _, item := range batch.Items {
		li := mapping.ToModelLineItem(item)
		pb.Queue(upsert,
			li.LineItemID,
			li.BatchID,
			li.SequenceNumber,
			li.Amount,
			li.DebitAccountID,
			li.PayeeID,
			li.PayeeBankID,
			li.SchemeID,
			li.ZoneID,
			li.Narration,
			li.ReferenceNumber,
			li.EmployeeNumber,
			li.NationalID,
			li.CostCenter,
			li.SourceReference,
			li.DebitAccountNumber,
			li.PayeeName,
			li.PayeeAccountNumber,
			li.PayeeCreditReference,
			li.PayeeBankCode,
			li.SchemeCode,
			li.ZoneCode,
			li.CreatedAt,
			li.CreatedBy,
		)
	}

	// Close reports the first failing statement.
	if err := t.tx.SendBatch(ctx, pb).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate sequence number in batch %s", apperrors.ErrDuplicate, batch.BatchID)
		}
		return apperrors.NewAppError(500, "failed to write line items for batch "+batch.BatchID, err)
	}
	return nil
}

func (t *pgxBatchTx) DeleteBatch(ctx context.Context, batchID string, expectedVersion int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM batches WHERE batch_id = $1 AND version = $2;`, batchID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete batch "+batchID, err)
	}
	if tag.RowsAffected() == 0 {
		return t.staleVersion(ctx, batchID, expectedVersion)
	}
	return nil
}
