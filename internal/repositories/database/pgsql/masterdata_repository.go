package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMasterDataRepository reads the reference tables maintained outside this service.
type PgxMasterDataRepository struct {
	BaseRepository
}

func newPgxMasterDataRepository(pool *pgxpool.Pool) portsrepo.MasterDataReader {
	return &PgxMasterDataRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MasterDataReader = (*PgxMasterDataRepository)(nil)

// findOne scans a single row, mapping an empty result to ErrNotFound.
func (r *PgxMasterDataRepository) findOne(ctx context.Context, kind, id, query string, dest ...any) error {
	err := r.Pool.QueryRow(ctx, query, id).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
		}
		return apperrors.NewAppError(500, "failed to find "+kind+" "+id, err)
	}
	return nil
}

func (r *PgxMasterDataRepository) FindSchemeByID(ctx context.Context, schemeID string) (*domain.Scheme, error) {
	var s domain.Scheme
	err := r.findOne(ctx, "scheme", schemeID, `
		SELECT scheme_id, scheme_code, scheme_name, COALESCE(zone_id, ''), COALESCE(default_cost_center, ''), is_active
		FROM schemes WHERE scheme_id = $1;`,
		&s.SchemeID, &s.SchemeCode, &s.SchemeName, &s.ZoneID, &s.DefaultCostCenter, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxMasterDataRepository) FindZoneByID(ctx context.Context, zoneID string) (*domain.Zone, error) {
	var z domain.Zone
	err := r.findOne(ctx, "zone", zoneID, `
		SELECT zone_id, zone_code, zone_name, is_active
		FROM zones WHERE zone_id = $1;`,
		&z.ZoneID, &z.ZoneCode, &z.ZoneName, &z.IsActive)
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *PgxMasterDataRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.findOne(ctx, "supplier", supplierID, `
		SELECT supplier_id, supplier_code, supplier_name, COALESCE(bank_id, ''), account_number,
		       COALESCE(account_name, ''), COALESCE(credit_reference, ''), COALESCE(cost_center, ''), is_active
		FROM suppliers WHERE supplier_id = $1;`,
		&s.SupplierID, &s.SupplierCode, &s.SupplierName, &s.BankID, &s.AccountNumber,
		&s.AccountName, &s.CreditReference, &s.CostCenter, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgxMasterDataRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	var b domain.Bank
	err := r.findOne(ctx, "bank", bankID, `
		SELECT bank_id, bank_name, COALESCE(swift_code, ''), is_active
		FROM banks WHERE bank_id = $1;`,
		&b.BankID, &b.BankName, &b.SwiftCode, &b.IsActive)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgxMasterDataRepository) FindDebitAccountByID(ctx context.Context, debitAccountID string) (*domain.DebitAccount, error) {
	var a domain.DebitAccount
	err := r.findOne(ctx, "debit account", debitAccountID, `
		SELECT debit_account_id, account_number, COALESCE(account_name, ''), is_active
		FROM debit_accounts WHERE debit_account_id = $1;`,
		&a.DebitAccountID, &a.AccountNumber, &a.AccountName, &a.IsActive)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
