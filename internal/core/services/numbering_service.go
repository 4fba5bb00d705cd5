package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/Alialhaj1/SLMS-sub007/internal/middleware"
)

// numberingService hands out fiscal-year-aware document numbers. All
// allocation is serialized per (tenant, document type) by the repository's
// row-level lock; this layer adds formatting and administrative operations.
type numberingService struct {
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewNumberingService creates a new numbering service.
func NewNumberingService(sequenceRepo portsrepo.SequenceRepositoryFacade) portssvc.NumberingSvcFacade {
	return &numberingService{sequenceRepo: sequenceRepo}
}

var _ portssvc.NumberingSvcFacade = (*numberingService)(nil)

// GenerateNumber allocates the next sequence value for the key and returns
// the formatted document number.
func (s *numberingService) GenerateNumber(ctx context.Context, tenantID string, docType domain.DocumentType, branchCode string) (*domain.GeneratedNumber, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if docType == "" {
		return nil, fmt.Errorf("%w: document type is required", apperrors.ErrValidation)
	}

	counter, sequence, err := s.sequenceRepo.AllocateNext(ctx, tenantID, docType, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to allocate sequence", slog.String("tenant_id", tenantID), slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to allocate sequence for %s: %w", docType, err)
	}

	generated := &domain.GeneratedNumber{
		Number:     counter.Format(sequence, counter.FiscalYear, branchCode),
		Sequence:   sequence,
		FiscalYear: counter.FiscalYear,
	}

	logger.Debug("Document number generated",
		slog.String("tenant_id", tenantID),
		slog.String("document_type", string(docType)),
		slog.String("number", generated.Number),
		slog.Int64("sequence", sequence),
	)
	return generated, nil
}

// PreviewNextNumber computes the number the next allocation would produce
// without taking the write lock. A concurrent GenerateNumber can invalidate
// the preview; callers must not treat it as an allocation.
func (s *numberingService) PreviewNextNumber(ctx context.Context, tenantID string, docType domain.DocumentType, branchCode string) (string, error) {
	if docType == "" {
		return "", fmt.Errorf("%w: document type is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	counter, err := s.sequenceRepo.FindCounter(ctx, tenantID, docType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No allocation has happened yet; preview against the default
			// configuration the first allocation would create.
			c := domain.NewSequenceCounter(tenantID, docType, now)
			counter = &c
		} else {
			return "", fmt.Errorf("failed to load counter for preview: %w", err)
		}
	}

	sequence, reset := counter.NextValue(now)
	fiscalYear := counter.FiscalYear
	if reset {
		fiscalYear = now.Year()
	}
	return counter.Format(sequence, fiscalYear, branchCode), nil
}

// GetCounter retrieves counter state for a key.
func (s *numberingService) GetCounter(ctx context.Context, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error) {
	counter, err := s.sequenceRepo.FindCounter(ctx, tenantID, docType)
	if err != nil {
		return nil, fmt.Errorf("failed to find counter for %s/%s: %w", tenantID, docType, err)
	}
	return counter, nil
}

// UpdateCounterConfig applies partial configuration changes to a counter,
// creating it with defaults first if it does not exist yet.
func (s *numberingService) UpdateCounterConfig(ctx context.Context, tenantID string, docType domain.DocumentType, req dto.UpdateCounterConfigRequest, userID string) (*domain.SequenceCounter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	counter, err := s.sequenceRepo.FindCounter(ctx, tenantID, docType)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load counter for config update: %w", err)
		}
		c := domain.NewSequenceCounter(tenantID, docType, now)
		c.CreatedAt = now
		c.CreatedBy = userID
		counter = &c
	}

	if req.Prefix != nil {
		counter.Prefix = *req.Prefix
	}
	if req.Suffix != nil {
		counter.Suffix = *req.Suffix
	}
	if req.Separator != nil {
		counter.Separator = *req.Separator
	}
	if req.PadWidth != nil {
		counter.PadWidth = *req.PadWidth
	}
	if req.ResetPolicy != nil {
		counter.ResetPolicy = domain.ResetPolicy(*req.ResetPolicy)
	}
	if req.IncludeFiscalYear != nil {
		counter.IncludeFiscalYear = *req.IncludeFiscalYear
	}
	if req.FiscalYearFormat != nil {
		counter.FiscalYearFormat = domain.FiscalYearFormat(*req.FiscalYearFormat)
	}
	if req.IncludeBranchCode != nil {
		counter.IncludeBranchCode = *req.IncludeBranchCode
	}
	counter.LastUpdatedAt = now
	counter.LastUpdatedBy = userID

	if err := s.sequenceRepo.UpdateCounterConfig(ctx, *counter); err != nil {
		logger.Error("Failed to persist counter config", slog.String("tenant_id", tenantID), slog.String("document_type", string(docType)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update counter config: %w", err)
	}

	logger.Info("Counter config updated", slog.String("tenant_id", tenantID), slog.String("document_type", string(docType)))
	return counter, nil
}

// SetCurrentNumber manually overrides a counter value. This can produce
// duplicate or out-of-order numbers, so every use is logged at warning level
// as an audit trail.
func (s *numberingService) SetCurrentNumber(ctx context.Context, tenantID string, docType domain.DocumentType, value int64, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if value < 0 {
		return fmt.Errorf("%w: counter value must not be negative", apperrors.ErrValidation)
	}

	logger.Warn("Sequence counter manually overridden",
		slog.String("tenant_id", tenantID),
		slog.String("document_type", string(docType)),
		slog.Int64("new_value", value),
		slog.String("overridden_by", userID),
	)

	if err := s.sequenceRepo.SetCurrentNumber(ctx, tenantID, docType, value, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set counter value: %w", err)
	}
	return nil
}
