package repositories

import (
	"context"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
)

// AccountReader defines read operations against the tenant account directory.
// The directory itself is maintained outside this core.
type AccountReader interface {
	// FindAccountByID retrieves a single directory account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByCodes resolves account codes to directory accounts for a
	// tenant. Codes with no directory row are simply absent from the result
	// map; resolution gaps are the caller's concern.
	FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade is the account directory surface this core consumes.
type AccountRepositoryFacade interface {
	AccountReader
}
