package repositories

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// MasterDataReader resolves the reference data line items point at.
// Every finder returns apperrors.ErrNotFound for an unknown ID.
type MasterDataReader interface {
	FindSchemeByID(ctx context.Context, schemeID string) (*domain.Scheme, error)
	FindZoneByID(ctx context.Context, zoneID string) (*domain.Zone, error)
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
	FindDebitAccountByID(ctx context.Context, debitAccountID string) (*domain.DebitAccount, error)
}
