package services

import (
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/platform/config"
	"github.com/SscSPs/eft_batch_service/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, policy domain.RolePolicy, m *metrics.Metrics, opts ...BatchServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Config defaults come first so explicit options can override them.
	batchOpts := append([]BatchServiceOption{
		WithDefaults(cfg.DefaultCurrency, cfg.ReferencePrefix),
		WithMetrics(m),
	}, opts...)

	container.Batch = NewBatchService(repos.BatchRepo, repos.MasterDataRepo, repos.AuditLogRepo, policy, batchOpts...)
	container.Export = NewExportService(container.Batch, policy, m, cfg.ReferencePrefix, nil)
	container.MasterData = NewMasterDataService(repos.MasterDataRepo)

	return container
}
