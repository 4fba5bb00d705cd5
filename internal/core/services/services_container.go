package services

import (
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Numbering = NewNumberingService(repos.SequenceRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)

	return container
}
