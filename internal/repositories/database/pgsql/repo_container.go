package pgsql

import (
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	sequenceRepo := NewSequenceRepository(dbPool)
	accountRepo := NewAccountRepository(dbPool)
	// Ledger entries draw their display numbers from the sequence repository
	// inside their own save transaction.
	ledgerRepo := NewLedgerRepository(dbPool, sequenceRepo)

	return portsrepo.RepositoryProvider{
		SequenceRepo: sequenceRepo,
		LedgerRepo:   ledgerRepo,
		AccountRepo:  accountRepo,
	}
}
