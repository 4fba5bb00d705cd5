package services

import (
	"context"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.LedgerEntry, error)

	// GetEntriesForReference retrieves the entries recorded against a
	// business document, newest first.
	GetEntriesForReference(ctx context.Context, tenantID string, referenceType, referenceID string) ([]domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries for a tenant.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines posting and reversal operations.
type LedgerWriterSvc interface {
	// CreateEntry validates a balanced line set and persists header and
	// lines as one atomic unit.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// ReverseEntry creates a contra entry for a posted entry and cross-links
	// the pair. A second reversal attempt fails with ErrAlreadyReversed.
	ReverseEntry(ctx context.Context, tenantID string, entryID string, reason string, userID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
