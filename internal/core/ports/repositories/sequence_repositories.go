package repositories

import (
	"context"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SequenceReader defines read operations for counter state.
type SequenceReader interface {
	// FindCounter retrieves the counter for a (tenant, document type) key.
	// Returns apperrors.ErrNotFound if no counter row exists yet.
	FindCounter(ctx context.Context, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error)
}

// SequenceAllocator defines serialized sequence allocation.
type SequenceAllocator interface {
	// AllocateNext locks the counter row for the key (creating it with the
	// type default configuration when absent), applies the reset policy at
	// now, persists the advanced counter and returns it together with the
	// allocated sequence value. Allocation is serialized per key by the
	// row-level lock.
	AllocateNext(ctx context.Context, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error)

	// AllocateNextInTx performs the same allocation inside an existing
	// transaction, so a caller can make number allocation atomic with its
	// own writes.
	AllocateNextInTx(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error)
}

// SequenceWriter defines administrative mutations of counter state.
type SequenceWriter interface {
	// UpdateCounterConfig persists formatting and reset configuration changes.
	UpdateCounterConfig(ctx context.Context, counter domain.SequenceCounter) error

	// SetCurrentNumber overrides the counter value for a key. Operationally
	// dangerous; callers must audit every use.
	SetCurrentNumber(ctx context.Context, tenantID string, docType domain.DocumentType, value int64, userID string, now time.Time) error
}

// SequenceRepositoryFacade combines all sequence-related repository interfaces.
type SequenceRepositoryFacade interface {
	SequenceReader
	SequenceAllocator
	SequenceWriter
}
