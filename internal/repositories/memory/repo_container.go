package memory

import (
	"fmt"
	"os"

	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
)

// NewRepositoryProvider builds in-process repositories. A non-empty
// masterDataFile seeds the master data from YAML.
func NewRepositoryProvider(masterDataFile string) (portsrepo.RepositoryProvider, error) {
	masterData := NewMasterDataRepository()
	if masterDataFile != "" {
		f, err := os.Open(masterDataFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to open master data file: %w", err)
		}
		defer f.Close()
		if err := masterData.LoadMasterData(f); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
	}

	return portsrepo.RepositoryProvider{
		BatchRepo:      NewBatchRepository(),
		MasterDataRepo: masterData,
		AuditLogRepo:   NewAuditLogRepository(),
	}, nil
}
