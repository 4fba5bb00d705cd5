package services

import (
	"context"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
)

// NumberingReaderSvc defines read-only numbering operations.
type NumberingReaderSvc interface {
	// PreviewNextNumber computes the number the next allocation would
	// produce without locking or mutating the counter. Preview may race
	// with concurrent allocation; it is for display only.
	PreviewNextNumber(ctx context.Context, tenantID string, docType domain.DocumentType, branchCode string) (string, error)

	// GetCounter retrieves the counter configuration and state for a key.
	GetCounter(ctx context.Context, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error)
}

// NumberingWriterSvc defines allocating and administrative operations.
type NumberingWriterSvc interface {
	// GenerateNumber allocates the next sequence value for the key under a
	// row-level lock and returns the formatted document number.
	GenerateNumber(ctx context.Context, tenantID string, docType domain.DocumentType, branchCode string) (*domain.GeneratedNumber, error)

	// UpdateCounterConfig applies formatting/reset configuration changes.
	UpdateCounterConfig(ctx context.Context, tenantID string, docType domain.DocumentType, req dto.UpdateCounterConfigRequest, userID string) (*domain.SequenceCounter, error)

	// SetCurrentNumber manually overrides the counter value. Every use is
	// logged at warning level as an audit trail.
	SetCurrentNumber(ctx context.Context, tenantID string, docType domain.DocumentType, value int64, userID string) error
}

// NumberingSvcFacade combines all numbering service interfaces.
type NumberingSvcFacade interface {
	NumberingReaderSvc
	NumberingWriterSvc
}
