package services

import (
	"context"

	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// MasterDataSvc serves read-only lookups used while preparing line items.
type MasterDataSvc interface {
	GetSchemeDetails(ctx context.Context, schemeID string) (*domain.SchemeDetails, error)
	GetSupplierDetails(ctx context.Context, supplierID string) (*domain.SupplierDetails, error)
	GetDebitAccount(ctx context.Context, debitAccountID string) (*domain.DebitAccount, error)
}
