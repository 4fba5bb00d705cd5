package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.GeneratedNumber, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedNumber), args.Error(1)
}

func (m *MockLedgerRepository) SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.GeneratedNumber, error) {
	args := m.Called(ctx, reversal, lines, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedNumber), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByReference(ctx context.Context, tenantID, referenceType, referenceID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func balancedCreateRequest() dto.CreateEntryRequest {
	debitAccID := "acc-debit"
	creditAccID := "acc-credit"
	return dto.CreateEntryRequest{
		EntryDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EntryType:   string(domain.EntryTypePurchaseInvoice),
		Description: "Goods received against PI-2025-0031",
		Lines: []dto.EntryLineInput{
			{AccountID: &debitAccID, DebitAmount: decimal.RequireFromString("100.00"), CreditAmount: decimal.Zero},
			{AccountID: &creditAccID, DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("100.00")},
		},
	}
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"
	userID := "user-1"

	t.Run("posts a balanced entry with an allocated number", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		var savedEntry domain.LedgerEntry
		var savedLines []domain.LedgerLine
		gen := &domain.GeneratedNumber{Number: "JE-2025-0001", Sequence: 1, FiscalYear: 2025}
		mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine")).
			Run(func(args mock.Arguments) {
				savedEntry = args.Get(1).(domain.LedgerEntry)
				savedLines = args.Get(2).([]domain.LedgerLine)
			}).
			Return(gen, nil).Once()

		entry, err := svc.CreateEntry(ctx, tenantID, balancedCreateRequest(), userID)

		require.NoError(t, err)
		assert.Equal(t, "JE-2025-0001", entry.EntryNumber)
		assert.Equal(t, domain.StatusPosted, entry.Status)
		assert.Equal(t, tenantID, entry.TenantID)
		assert.True(t, entry.TotalDebit.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, entry.TotalCredit.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, userID, entry.CreatedBy)

		// The persisted header carries the same totals and status
		assert.Equal(t, domain.StatusPosted, savedEntry.Status)
		require.Len(t, savedLines, 2)
		assert.Equal(t, 1, savedLines[0].LineNumber)
		assert.Equal(t, 2, savedLines[1].LineNumber)
		assert.True(t, savedLines[0].Account.Resolved())
		assert.NotEmpty(t, savedLines[0].LineID)
		_, parseErr := uuid.Parse(savedLines[0].LineID)
		assert.NoError(t, parseErr)
		mockLedgerRepo.AssertExpectations(t)
	})

	t.Run("rejects an unbalanced entry without persisting", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines[1].CreditAmount = decimal.RequireFromString("99.00")

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		assert.ErrorIs(t, err, services.ErrUnbalancedEntry)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockLedgerRepo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tolerates rounding inside the balance epsilon", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines[1].CreditAmount = decimal.RequireFromString("100.01")
		mockLedgerRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).
			Return(&domain.GeneratedNumber{Number: "JE-2025-0002", Sequence: 2, FiscalYear: 2025}, nil).Once()

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		require.NoError(t, err)
		mockLedgerRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty line set", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines = nil

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		assert.ErrorIs(t, err, services.ErrEntryNoLines)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines[0].DebitAmount = decimal.RequireFromString("-5.00")

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		assert.ErrorIs(t, err, services.ErrNegativeAmount)
	})

	t.Run("rejects reversal entry types posted directly", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.EntryType = string(domain.EntryTypePurchaseInvoice.ReversalType())

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		assert.ErrorIs(t, err, services.ErrReversalEntryType)
		mockLedgerRepo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves account codes against the directory", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines[0].AccountID = nil
		req.Lines[0].AccountCode = "1101"
		req.Lines[1].AccountID = nil
		req.Lines[1].AccountCode = "9999"

		mockAccountRepo.On("FindAccountsByCodes", ctx, tenantID, []string{"1101", "9999"}).
			Return(map[string]domain.Account{
				"1101": {AccountID: "acc-1101", TenantID: tenantID, Code: "1101", Name: "Inventory"},
			}, nil).Once()

		var savedLines []domain.LedgerLine
		mockLedgerRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				savedLines = args.Get(2).([]domain.LedgerLine)
			}).
			Return(&domain.GeneratedNumber{Number: "JE-2025-0003", Sequence: 3, FiscalYear: 2025}, nil).Once()

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		require.NoError(t, err)
		require.Len(t, savedLines, 2)
		// Resolved code carries the directory account id
		assert.True(t, savedLines[0].Account.Resolved())
		assert.Equal(t, "acc-1101", *savedLines[0].Account.AccountID)
		// Unknown code is stored raw, posting still succeeds
		assert.False(t, savedLines[1].Account.Resolved())
		assert.Equal(t, "9999", savedLines[1].Account.AccountCode)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("rejects a line with neither account id nor code", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		req := balancedCreateRequest()
		req.Lines[0].AccountID = nil
		req.Lines[0].AccountCode = ""

		_, err := svc.CreateEntry(ctx, tenantID, req, userID)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockLedgerRepo.AssertNotCalled(t, "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
	})
}

func postedEntry(tenantID string) *domain.LedgerEntry {
	refID := "pi-31"
	return &domain.LedgerEntry{
		EntryID:       "entry-1",
		TenantID:      tenantID,
		EntryNumber:   "JE-2025-0007",
		EntryDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EntryType:     domain.EntryTypePurchaseInvoice,
		ReferenceType: "purchase_invoice",
		ReferenceID:   &refID,
		Description:   "Goods received",
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		TotalDebit:    decimal.RequireFromString("100.00"),
		TotalCredit:   decimal.RequireFromString("100.00"),
		Status:        domain.StatusPosted,
	}
}

func postedEntryLines() []domain.LedgerLine {
	return []domain.LedgerLine{
		{
			LineID:      "line-1",
			EntryID:     "entry-1",
			LineNumber:  1,
			Account:     domain.ResolvedRef("acc-debit", "1101"),
			DebitAmount: decimal.RequireFromString("100.00"),
		},
		{
			LineID:       "line-2",
			EntryID:      "entry-1",
			LineNumber:   2,
			Account:      domain.ResolvedRef("acc-credit", "2101"),
			CreditAmount: decimal.RequireFromString("100.00"),
		},
	}
}

func TestReverseEntry(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"
	userID := "user-2"

	t.Run("creates a cross-linked contra entry with swapped amounts", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		original := postedEntry(tenantID)
		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(original, nil).Once()
		mockLedgerRepo.On("FindLinesByEntryID", ctx, "entry-1").Return(postedEntryLines(), nil).Once()

		var savedReversal domain.LedgerEntry
		var savedLines []domain.LedgerLine
		mockLedgerRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine"), "entry-1").
			Run(func(args mock.Arguments) {
				savedReversal = args.Get(1).(domain.LedgerEntry)
				savedLines = args.Get(2).([]domain.LedgerLine)
			}).
			Return(&domain.GeneratedNumber{Number: "JE-2025-0008", Sequence: 8, FiscalYear: 2025}, nil).Once()

		reversal, err := svc.ReverseEntry(ctx, tenantID, "entry-1", "wrong warehouse", userID)

		require.NoError(t, err)
		assert.Equal(t, "JE-2025-0008", reversal.EntryNumber)
		assert.Equal(t, domain.EntryTypePurchaseInvoice.ReversalType(), reversal.EntryType)
		assert.Equal(t, domain.StatusReversing, reversal.Status)
		require.NotNil(t, reversal.ReversingEntryID)
		assert.Equal(t, "entry-1", *reversal.ReversingEntryID)
		assert.Contains(t, reversal.Description, "Reversal of JE-2025-0007")
		assert.Contains(t, reversal.Description, "wrong warehouse")

		// Totals swapped on the header
		assert.True(t, savedReversal.TotalDebit.Equal(original.TotalCredit))
		assert.True(t, savedReversal.TotalCredit.Equal(original.TotalDebit))

		// Every line swapped debit and credit, same accounts
		require.Len(t, savedLines, 2)
		assert.True(t, savedLines[0].CreditAmount.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, savedLines[0].DebitAmount.IsZero())
		assert.Equal(t, "acc-debit", *savedLines[0].Account.AccountID)
		assert.True(t, savedLines[1].DebitAmount.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, savedLines[1].CreditAmount.IsZero())
		mockLedgerRepo.AssertExpectations(t)
	})

	t.Run("rejects reversing an already reversed entry", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		original := postedEntry(tenantID)
		original.Status = domain.StatusReversed
		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(original, nil).Once()

		_, err := svc.ReverseEntry(ctx, tenantID, "entry-1", "", userID)

		assert.ErrorIs(t, err, services.ErrAlreadyReversed)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		mockLedgerRepo.AssertNotCalled(t, "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects reversing a contra entry", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		original := postedEntry(tenantID)
		original.EntryType = domain.EntryTypePurchaseInvoice.ReversalType()
		original.Status = domain.StatusReversing
		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(original, nil).Once()

		_, err := svc.ReverseEntry(ctx, tenantID, "entry-1", "", userID)

		assert.ErrorIs(t, err, services.ErrReverseReversal)
	})

	t.Run("maps a lost reversal race to already reversed", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(postedEntry(tenantID), nil).Once()
		mockLedgerRepo.On("FindLinesByEntryID", ctx, "entry-1").Return(postedEntryLines(), nil).Once()
		mockLedgerRepo.On("SaveReversal", ctx, mock.Anything, mock.Anything, "entry-1").
			Return(nil, apperrors.ErrConflict).Once()

		_, err := svc.ReverseEntry(ctx, tenantID, "entry-1", "", userID)

		assert.ErrorIs(t, err, services.ErrAlreadyReversed)
	})

	t.Run("hides entries belonging to other tenants", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(postedEntry("tenant-other"), nil).Once()

		_, err := svc.ReverseEntry(ctx, tenantID, "entry-1", "", userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.ReverseEntry(ctx, tenantID, "missing", "", userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestGetEntryByID(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"

	t.Run("returns the entry with its lines", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(postedEntry(tenantID), nil).Once()
		mockLedgerRepo.On("FindLinesByEntryID", ctx, "entry-1").Return(postedEntryLines(), nil).Once()

		entry, err := svc.GetEntryByID(ctx, tenantID, "entry-1")

		require.NoError(t, err)
		assert.Equal(t, "JE-2025-0007", entry.EntryNumber)
		assert.Len(t, entry.Lines, 2)
	})

	t.Run("hides entries belonging to other tenants", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntryByID", ctx, "entry-1").Return(postedEntry("tenant-other"), nil).Once()

		_, err := svc.GetEntryByID(ctx, tenantID, "entry-1")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockLedgerRepo.AssertNotCalled(t, "FindLinesByEntryID", mock.Anything, mock.Anything)
	})
}

func TestListEntries(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"

	mockLedgerRepo := new(MockLedgerRepository)
	mockAccountRepo := new(MockAccountRepository)
	svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

	entries := []domain.LedgerEntry{*postedEntry(tenantID)}
	mockLedgerRepo.On("ListEntriesByTenant", ctx, tenantID, 10, (*string)(nil), false).
		Return(entries, "token-abc", nil).Once()

	resp, err := svc.ListEntries(ctx, tenantID, dto.ListEntriesParams{Limit: 10})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "JE-2025-0007", resp.Entries[0].EntryNumber)
	require.NotNil(t, resp.NextToken)
	assert.Equal(t, "token-abc", *resp.NextToken)
}

func TestGetEntriesForReference(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-1"

	t.Run("requires both reference parts", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		_, err := svc.GetEntriesForReference(ctx, tenantID, "purchase_invoice", "")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("returns entries for the document", func(t *testing.T) {
		mockLedgerRepo := new(MockLedgerRepository)
		mockAccountRepo := new(MockAccountRepository)
		svc := services.NewLedgerService(mockLedgerRepo, mockAccountRepo)

		mockLedgerRepo.On("FindEntriesByReference", ctx, tenantID, "purchase_invoice", "pi-31").
			Return([]domain.LedgerEntry{*postedEntry(tenantID)}, nil).Once()

		entries, err := svc.GetEntriesForReference(ctx, tenantID, "purchase_invoice", "pi-31")

		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
