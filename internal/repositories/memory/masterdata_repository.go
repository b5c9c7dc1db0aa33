package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"gopkg.in/yaml.v3"
)

// MasterDataRepository holds reference data in maps keyed by ID.
type MasterDataRepository struct {
	mu            sync.RWMutex
	banks         map[string]domain.Bank
	zones         map[string]domain.Zone
	schemes       map[string]domain.Scheme
	suppliers     map[string]domain.Supplier
	debitAccounts map[string]domain.DebitAccount
}

// NewMasterDataRepository creates an empty master data store.
func NewMasterDataRepository() *MasterDataRepository {
	return &MasterDataRepository{
		banks:         make(map[string]domain.Bank),
		zones:         make(map[string]domain.Zone),
		schemes:       make(map[string]domain.Scheme),
		suppliers:     make(map[string]domain.Supplier),
		debitAccounts: make(map[string]domain.DebitAccount),
	}
}

var _ portsrepo.MasterDataReader = (*MasterDataRepository)(nil)

func (r *MasterDataRepository) PutBank(b domain.Bank) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banks[b.BankID] = b
}

func (r *MasterDataRepository) PutZone(z domain.Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[z.ZoneID] = z
}

func (r *MasterDataRepository) PutScheme(s domain.Scheme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemes[s.SchemeID] = s
}

func (r *MasterDataRepository) PutSupplier(s domain.Supplier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[s.SupplierID] = s
}

func (r *MasterDataRepository) PutDebitAccount(a domain.DebitAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debitAccounts[a.DebitAccountID] = a
}

func (r *MasterDataRepository) FindSchemeByID(_ context.Context, id string) (*domain.Scheme, error) {
	return find(&r.mu, r.schemes, id)
}

func (r *MasterDataRepository) FindZoneByID(_ context.Context, id string) (*domain.Zone, error) {
	return find(&r.mu, r.zones, id)
}

func (r *MasterDataRepository) FindSupplierByID(_ context.Context, id string) (*domain.Supplier, error) {
	return find(&r.mu, r.suppliers, id)
}

func (r *MasterDataRepository) FindBankByID(_ context.Context, id string) (*domain.Bank, error) {
	return find(&r.mu, r.banks, id)
}

func (r *MasterDataRepository) FindDebitAccountByID(_ context.Context, id string) (*domain.DebitAccount, error) {
	return find(&r.mu, r.debitAccounts, id)
}

func find[T any](mu *sync.RWMutex, m map[string]T, id string) (*T, error) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := m[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

// seedFile is the YAML layout accepted by LoadMasterData. Entries without an
// explicit "active: false" are active.
type seedFile struct {
	Banks []struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Swift  string `yaml:"swift"`
		Active *bool  `yaml:"active"`
	} `yaml:"banks"`
	Zones []struct {
		ID     string `yaml:"id"`
		Code   string `yaml:"code"`
		Name   string `yaml:"name"`
		Active *bool  `yaml:"active"`
	} `yaml:"zones"`
	Schemes []struct {
		ID                string `yaml:"id"`
		Code              string `yaml:"code"`
		Name              string `yaml:"name"`
		Zone              string `yaml:"zone"`
		DefaultCostCenter string `yaml:"defaultCostCenter"`
		Active            *bool  `yaml:"active"`
	} `yaml:"schemes"`
	Suppliers []struct {
		ID              string `yaml:"id"`
		Code            string `yaml:"code"`
		Name            string `yaml:"name"`
		Bank            string `yaml:"bank"`
		AccountNumber   string `yaml:"accountNumber"`
		AccountName     string `yaml:"accountName"`
		CreditReference string `yaml:"creditReference"`
		CostCenter      string `yaml:"costCenter"`
		Active          *bool  `yaml:"active"`
	} `yaml:"suppliers"`
	DebitAccounts []struct {
		ID            string `yaml:"id"`
		AccountNumber string `yaml:"accountNumber"`
		AccountName   string `yaml:"accountName"`
		Active        *bool  `yaml:"active"`
	} `yaml:"debitAccounts"`
}

func active(b *bool) bool { return b == nil || *b }

// LoadMasterData decodes a YAML seed document into the repository.
func (r *MasterDataRepository) LoadMasterData(in io.Reader) error {
	var f seedFile
	if err := yaml.NewDecoder(in).Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode master data: %w", err)
	}
	for _, b := range f.Banks {
		r.PutBank(domain.Bank{BankID: b.ID, BankName: b.Name, SwiftCode: b.Swift, IsActive: active(b.Active)})
	}
	for _, z := range f.Zones {
		r.PutZone(domain.Zone{ZoneID: z.ID, ZoneCode: z.Code, ZoneName: z.Name, IsActive: active(z.Active)})
	}
	for _, s := range f.Schemes {
		r.PutScheme(domain.Scheme{
			SchemeID: s.ID, SchemeCode: s.Code, SchemeName: s.Name, ZoneID: s.Zone,
			DefaultCostCenter: s.DefaultCostCenter, IsActive: active(s.Active),
		})
	}
	for _, s := range f.Suppliers {
		r.PutSupplier(domain.Supplier{
			SupplierID: s.ID, SupplierCode: s.Code, SupplierName: s.Name, BankID: s.Bank,
			AccountNumber: s.AccountNumber, AccountName: s.AccountName,
			CreditReference: s.CreditReference, CostCenter: s.CostCenter, IsActive: active(s.Active),
		})
	}
	for _, a := range f.DebitAccounts {
		r.PutDebitAccount(domain.DebitAccount{
			DebitAccountID: a.ID, AccountNumber: a.AccountNumber, AccountName: a.AccountName, IsActive: active(a.Active),
		})
	}
	return nil
}
