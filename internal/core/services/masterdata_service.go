package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
)

type masterDataService struct {
	BaseService
	repo portsrepo.MasterDataReader
}

// NewMasterDataService creates the read-only master data lookups.
// Inactive records are reported as not found.
func NewMasterDataService(repo portsrepo.MasterDataReader) portssvc.MasterDataSvc {
	return &masterDataService{repo: repo}
}

var _ portssvc.MasterDataSvc = (*masterDataService)(nil)

func (s *masterDataService) GetSchemeDetails(ctx context.Context, schemeID string) (*domain.SchemeDetails, error) {
	scheme, err := s.repo.FindSchemeByID(ctx, schemeID)
	if err != nil {
		return nil, s.lookupError(ctx, err, "scheme", schemeID)
	}
	if !scheme.IsActive {
		return nil, fmt.Errorf("%w: scheme %s", apperrors.ErrNotFound, schemeID)
	}

	details := &domain.SchemeDetails{Scheme: *scheme}
	if scheme.ZoneID != "" {
		zone, err := s.repo.FindZoneByID(ctx, scheme.ZoneID)
		switch {
		case err == nil && zone.IsActive:
			details.Zone = zone
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return nil, s.lookupError(ctx, err, "zone", scheme.ZoneID)
		}
	}
	return details, nil
}

func (s *masterDataService) GetSupplierDetails(ctx context.Context, supplierID string) (*domain.SupplierDetails, error) {
	supplier, err := s.repo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, s.lookupError(ctx, err, "supplier", supplierID)
	}
	if !supplier.IsActive {
		return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
	}

	details := &domain.SupplierDetails{Supplier: *supplier}
	if supplier.BankID != "" {
		bank, err := s.repo.FindBankByID(ctx, supplier.BankID)
		switch {
		case err == nil && bank.IsActive:
			details.Bank = bank
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return nil, s.lookupError(ctx, err, "bank", supplier.BankID)
		}
	}
	return details, nil
}

func (s *masterDataService) GetDebitAccount(ctx context.Context, debitAccountID string) (*domain.DebitAccount, error) {
	account, err := s.repo.FindDebitAccountByID(ctx, debitAccountID)
	if err != nil {
		return nil, s.lookupError(ctx, err, "debit account", debitAccountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: debit account %s", apperrors.ErrNotFound, debitAccountID)
	}
	return account, nil
}

func (s *masterDataService) lookupError(ctx context.Context, err error, kind, id string) error {
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load master data", slog.String("kind", kind), slog.String("id", id))
	}
	return err
}
