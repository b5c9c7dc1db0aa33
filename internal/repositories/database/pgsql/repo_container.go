package pgsql

import (
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BatchRepo:      newPgxBatchRepository(dbPool),
		MasterDataRepo: newPgxMasterDataRepository(dbPool),
		AuditLogRepo:   newPgxAuditLogRepository(dbPool),
	}
}
