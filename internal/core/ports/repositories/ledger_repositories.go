package repositories

import (
	"context"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
)

// LedgerReader defines read operations for posted entries.
type LedgerReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in line-number order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error)

	// FindEntriesByReference retrieves all entries recorded against a business
	// document, newest first.
	FindEntriesByReference(ctx context.Context, tenantID, referenceType, referenceID string) ([]domain.LedgerEntry, error)

	// ListEntriesByTenant retrieves a paginated list of entries using
	// token-based pagination. Returns the entries, a token for the next
	// page, and an error.
	ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for posting and reversal.
type LedgerWriter interface {
	// SaveEntry persists a header and its lines atomically. The display
	// entry number is allocated from the tenant's journal_entry counter
	// inside the same transaction; the allocated number is returned and
	// already written into the stored header.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.GeneratedNumber, error)

	// SaveReversal persists a contra entry and flips the original entry to
	// REVERSED with its back-link, all in one transaction. The original must
	// still be POSTED at commit time; otherwise apperrors.ErrConflict.
	SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.GeneratedNumber, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
