package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

// Ensure MockSequenceRepository implements portsrepo.SequenceRepositoryFacade
var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) FindCounter(ctx context.Context, tenantID string, docType domain.DocumentType) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, tenantID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepository) AllocateNext(ctx context.Context, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error) {
	args := m.Called(ctx, tenantID, docType, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Get(1).(int64), args.Error(2)
}

func (m *MockSequenceRepository) AllocateNextInTx(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType, now time.Time) (*domain.SequenceCounter, int64, error) {
	args := m.Called(ctx, tx, tenantID, docType, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Get(1).(int64), args.Error(2)
}

func (m *MockSequenceRepository) UpdateCounterConfig(ctx context.Context, counter domain.SequenceCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

func (m *MockSequenceRepository) SetCurrentNumber(ctx context.Context, tenantID string, docType domain.DocumentType, value int64, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, docType, value, userID, now)
	return args.Error(0)
}

func newTestCounter(tenantID string, docType domain.DocumentType, fiscalYear int) domain.SequenceCounter {
	c := domain.NewSequenceCounter(tenantID, docType, time.Date(fiscalYear, 1, 1, 0, 0, 0, 0, time.UTC))
	return c
}

func TestGenerateNumber(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"

	t.Run("formats first allocation", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		counter := newTestCounter(tenantID, domain.DocTypePurchaseOrder, 2025)
		counter.CurrentNumber = 1
		mockRepo.On("AllocateNext", ctx, tenantID, domain.DocTypePurchaseOrder, mock.AnythingOfType("time.Time")).
			Return(&counter, int64(1), nil).Once()

		generated, err := svc.GenerateNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		require.NoError(t, err)
		assert.Equal(t, "PO-2025-0001", generated.Number)
		assert.Equal(t, int64(1), generated.Sequence)
		assert.Equal(t, 2025, generated.FiscalYear)
		mockRepo.AssertExpectations(t)
	})

	t.Run("formats subsequent allocation", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		counter := newTestCounter(tenantID, domain.DocTypePurchaseOrder, 2025)
		counter.CurrentNumber = 2
		mockRepo.On("AllocateNext", ctx, tenantID, domain.DocTypePurchaseOrder, mock.AnythingOfType("time.Time")).
			Return(&counter, int64(2), nil).Once()

		generated, err := svc.GenerateNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		require.NoError(t, err)
		assert.Equal(t, "PO-2025-0002", generated.Number)
		mockRepo.AssertExpectations(t)
	})

	t.Run("includes branch code when counter is configured for it", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		counter := newTestCounter(tenantID, domain.DocTypeSalesInvoice, 2025)
		counter.IncludeBranchCode = true
		counter.CurrentNumber = 12
		mockRepo.On("AllocateNext", ctx, tenantID, domain.DocTypeSalesInvoice, mock.AnythingOfType("time.Time")).
			Return(&counter, int64(12), nil).Once()

		generated, err := svc.GenerateNumber(ctx, tenantID, domain.DocTypeSalesInvoice, "JED")

		require.NoError(t, err)
		assert.Equal(t, "INV-JED-2025-0012", generated.Number)
	})

	t.Run("rejects empty document type", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		_, err := svc.GenerateNumber(ctx, tenantID, "", "")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "AllocateNext", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates allocation failure", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		repoErr := errors.New("deadlock detected")
		mockRepo.On("AllocateNext", ctx, tenantID, domain.DocTypePurchaseOrder, mock.AnythingOfType("time.Time")).
			Return(nil, int64(0), repoErr).Once()

		_, err := svc.GenerateNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestPreviewNextNumber(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"
	currentYear := time.Now().UTC().Year()

	t.Run("previews next value without allocating", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		counter := newTestCounter(tenantID, domain.DocTypePurchaseOrder, currentYear)
		counter.CurrentNumber = 7
		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypePurchaseOrder).Return(&counter, nil).Once()

		number, err := svc.PreviewNextNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%04d-0008", currentYear), number)
		mockRepo.AssertNotCalled(t, "AllocateNext", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("previews against defaults when no counter exists", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypeJournalEntry).Return(nil, apperrors.ErrNotFound).Once()

		number, err := svc.PreviewNextNumber(ctx, tenantID, domain.DocTypeJournalEntry, "")

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("JE-%04d-0001", currentYear), number)
	})

	t.Run("previews reset value across a fiscal year boundary", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		// Counter stuck in a previous fiscal year with a high sequence.
		counter := newTestCounter(tenantID, domain.DocTypePurchaseOrder, currentYear-1)
		counter.CurrentNumber = 4821
		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypePurchaseOrder).Return(&counter, nil).Once()

		number, err := svc.PreviewNextNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%04d-0001", currentYear), number)
	})

	t.Run("propagates lookup failure", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		repoErr := errors.New("connection refused")
		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypePurchaseOrder).Return(nil, repoErr).Once()

		_, err := svc.PreviewNextNumber(ctx, tenantID, domain.DocTypePurchaseOrder, "")

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestUpdateCounterConfig(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"
	userID := "user-1"

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("applies partial changes to an existing counter", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		counter := newTestCounter(tenantID, domain.DocTypePurchaseInvoice, 2025)
		counter.CurrentNumber = 40
		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypePurchaseInvoice).Return(&counter, nil).Once()
		mockRepo.On("UpdateCounterConfig", ctx, mock.MatchedBy(func(c domain.SequenceCounter) bool {
			return c.Prefix == "PINV" && c.PadWidth == 6 && c.ResetPolicy == domain.ResetNever && c.CurrentNumber == 40
		})).Return(nil).Once()

		updated, err := svc.UpdateCounterConfig(ctx, tenantID, domain.DocTypePurchaseInvoice, dto.UpdateCounterConfigRequest{
			Prefix:      strPtr("PINV"),
			PadWidth:    intPtr(6),
			ResetPolicy: strPtr("NEVER"),
		}, userID)

		require.NoError(t, err)
		assert.Equal(t, "PINV", updated.Prefix)
		assert.Equal(t, 6, updated.PadWidth)
		assert.Equal(t, domain.ResetNever, updated.ResetPolicy)
		assert.Equal(t, userID, updated.LastUpdatedBy)
		mockRepo.AssertExpectations(t)
	})

	t.Run("creates a default counter when none exists", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		mockRepo.On("FindCounter", ctx, tenantID, domain.DocTypeShipment).Return(nil, apperrors.ErrNotFound).Once()
		mockRepo.On("UpdateCounterConfig", ctx, mock.MatchedBy(func(c domain.SequenceCounter) bool {
			return c.Prefix == "SHIP" && c.CurrentNumber == 0 && c.CreatedBy == userID
		})).Return(nil).Once()

		updated, err := svc.UpdateCounterConfig(ctx, tenantID, domain.DocTypeShipment, dto.UpdateCounterConfigRequest{
			Prefix: strPtr("SHIP"),
		}, userID)

		require.NoError(t, err)
		assert.Equal(t, "SHIP", updated.Prefix)
		mockRepo.AssertExpectations(t)
	})
}

func TestSetCurrentNumber(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"
	userID := "admin-1"

	t.Run("rejects negative values", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		err := svc.SetCurrentNumber(ctx, tenantID, domain.DocTypePurchaseOrder, -1, userID)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockRepo.AssertNotCalled(t, "SetCurrentNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("persists the override", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		mockRepo.On("SetCurrentNumber", ctx, tenantID, domain.DocTypePurchaseOrder, int64(500), userID, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		err := svc.SetCurrentNumber(ctx, tenantID, domain.DocTypePurchaseOrder, 500, userID)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("propagates missing counter", func(t *testing.T) {
		mockRepo := new(MockSequenceRepository)
		svc := services.NewNumberingService(mockRepo)

		mockRepo.On("SetCurrentNumber", ctx, tenantID, domain.DocTypePurchaseOrder, int64(5), userID, mock.AnythingOfType("time.Time")).
			Return(apperrors.ErrNotFound).Once()

		err := svc.SetCurrentNumber(ctx, tenantID, domain.DocTypePurchaseOrder, 5, userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
