package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alialhaj1/SLMS-sub007/internal/apperrors"
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	portsrepo "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/repositories"
	portssvc "github.com/Alialhaj1/SLMS-sub007/internal/core/ports/services"
	"github.com/Alialhaj1/SLMS-sub007/internal/dto"
	"github.com/Alialhaj1/SLMS-sub007/internal/middleware"
)

var (
	// ErrUnbalancedEntry rejects a line set whose debits and credits differ
	// by more than the balance epsilon.
	ErrUnbalancedEntry = fmt.Errorf("%w: entry debits and credits do not balance", apperrors.ErrValidation)
	// ErrEntryNoLines rejects an entry with an empty line set.
	ErrEntryNoLines = fmt.Errorf("%w: entry must have at least one line", apperrors.ErrValidation)
	// ErrNegativeAmount rejects a line with a negative debit or credit.
	ErrNegativeAmount = fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
	// ErrReversalEntryType rejects callers posting reversal-typed entries
	// directly; contra entries are produced only by ReverseEntry.
	ErrReversalEntryType = fmt.Errorf("%w: reversal entry types cannot be posted directly", apperrors.ErrValidation)
	// ErrAlreadyReversed rejects a second reversal of the same entry.
	ErrAlreadyReversed = fmt.Errorf("%w: entry has already been reversed", apperrors.ErrConflict)
	// ErrReverseReversal rejects reversing a contra entry.
	ErrReverseReversal = fmt.Errorf("%w: cannot reverse a reversing entry", apperrors.ErrConflict)
)

const defaultCurrencyCode = "USD"

// ledgerService posts balanced double-entry records and produces contra
// entries for reversals. Callers build the line content; this service only
// guarantees atomicity, balance, numbering and reversal linkage.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry validates a balanced line set and persists header and lines as
// one atomic unit. The display entry number is allocated inside the same
// database transaction as the insert.
func (s *ledgerService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, ErrEntryNoLines
	}
	entryType := domain.EntryType(req.EntryType)
	if entryType.IsReversal() {
		return nil, ErrReversalEntryType
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.LedgerLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.DebitAmount.IsNegative() || lineReq.CreditAmount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d", ErrNegativeAmount, i+1)
		}
		lines[i] = domain.LedgerLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			LineNumber:     i + 1,
			Description:    lineReq.Description,
			DebitAmount:    lineReq.DebitAmount,
			CreditAmount:   lineReq.CreditAmount,
			CostCenterID:   lineReq.CostCenterID,
			ProjectID:      lineReq.ProjectID,
			DepartmentID:   lineReq.DepartmentID,
			CounterpartyID: lineReq.CounterpartyID,
			ItemID:         lineReq.ItemID,
			WarehouseID:    lineReq.WarehouseID,
			AuditFields:    audit,
		}
	}

	totalDebit, totalCredit := domain.EntryTotals(lines)
	if !domain.Balanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: total debit %s, total credit %s", ErrUnbalancedEntry, totalDebit.String(), totalCredit.String())
	}

	if err := s.resolveLineAccounts(ctx, tenantID, req.Lines, lines); err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}
	exchangeRate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil && req.ExchangeRate.IsPositive() {
		exchangeRate = *req.ExchangeRate
	}

	entry := domain.LedgerEntry{
		EntryID:         entryID,
		TenantID:        tenantID,
		EntryDate:       req.EntryDate,
		EntryType:       entryType,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		DescriptionAr:   req.DescriptionAr,
		CurrencyCode:    currency,
		ExchangeRate:    exchangeRate,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		Status:          domain.StatusPosted,
		AuditFields:     audit,
	}

	generated, err := s.ledgerRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save ledger entry", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}
	entry.EntryNumber = generated.Number
	entry.Lines = lines

	logger.Info("Ledger entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("tenant_id", tenantID),
		slog.String("total", totalDebit.String()),
	)
	return &entry, nil
}

// resolveLineAccounts fills each line's account reference, resolving raw
// codes against the tenant's account directory. Codes that do not resolve
// are kept on the line and logged; posting proceeds.
func (s *ledgerService) resolveLineAccounts(ctx context.Context, tenantID string, inputs []dto.EntryLineInput, lines []domain.LedgerLine) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	codes := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.AccountID == nil && in.AccountCode != "" {
			codes = append(codes, in.AccountCode)
		}
	}

	var byCode map[string]domain.Account
	if len(codes) > 0 {
		var err error
		byCode, err = s.accountRepo.FindAccountsByCodes(ctx, tenantID, uniqueStrings(codes))
		if err != nil {
			logger.Error("Failed to resolve account codes", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
			return fmt.Errorf("failed to resolve account codes: %w", err)
		}
	}

	for i, in := range inputs {
		switch {
		case in.AccountID != nil && *in.AccountID != "":
			lines[i].Account = domain.ResolvedRef(*in.AccountID, in.AccountCode)
		case in.AccountCode != "":
			if acc, ok := byCode[in.AccountCode]; ok {
				lines[i].Account = domain.ResolvedRef(acc.AccountID, acc.Code)
			} else {
				logger.Warn("Account code did not resolve; storing raw code",
					slog.String("tenant_id", tenantID),
					slog.String("account_code", in.AccountCode),
					slog.Int("line_number", i+1),
				)
				lines[i].Account = domain.UnresolvedRef(in.AccountCode)
			}
		default:
			return fmt.Errorf("%w: line %d has neither account id nor account code", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

// ReverseEntry creates a contra entry with every line's debit and credit
// swapped, and cross-links both records inside one transaction.
func (s *ledgerService) ReverseEntry(ctx context.Context, tenantID string, entryID string, reason string, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch entry for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entry for reversal: %w", err)
	}
	if original.TenantID != tenantID {
		// Obscure existence across tenants
		return nil, apperrors.ErrNotFound
	}
	if original.Status == domain.StatusReversed {
		return nil, ErrAlreadyReversed
	}
	if original.Status == domain.StatusReversing || original.EntryType.IsReversal() {
		return nil, ErrReverseReversal
	}

	originalLines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lines for reversal: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversalLines := make([]domain.LedgerLine, len(originalLines))
	for i, origLine := range originalLines {
		rev := origLine.Reversed()
		rev.LineID = uuid.NewString()
		rev.EntryID = reversalID
		rev.LineNumber = i + 1
		rev.Description = fmt.Sprintf("Reversal of %s line %d", original.EntryNumber, origLine.LineNumber)
		rev.AuditFields = audit
		reversalLines[i] = rev
	}

	description := fmt.Sprintf("Reversal of %s", original.EntryNumber)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	reversal := domain.LedgerEntry{
		EntryID:          reversalID,
		TenantID:         tenantID,
		EntryDate:        now,
		EntryType:        original.EntryType.ReversalType(),
		ReferenceType:    original.ReferenceType,
		ReferenceID:      original.ReferenceID,
		ReferenceNumber:  original.ReferenceNumber,
		Description:      description,
		DescriptionAr:    original.DescriptionAr,
		CurrencyCode:     original.CurrencyCode,
		ExchangeRate:     original.ExchangeRate,
		TotalDebit:       original.TotalCredit,
		TotalCredit:      original.TotalDebit,
		Status:           domain.StatusReversing,
		ReversingEntryID: &original.EntryID,
		AuditFields:      audit,
	}

	generated, err := s.ledgerRepo.SaveReversal(ctx, reversal, reversalLines, original.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost the race against a concurrent reversal.
			return nil, ErrAlreadyReversed
		}
		logger.Error("Failed to save reversal entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}
	reversal.EntryNumber = generated.Number
	reversal.Lines = reversalLines

	logger.Info("Ledger entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversalID),
		slog.String("reversal_entry_number", reversal.EntryNumber),
	)
	return &reversal, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// GetEntriesForReference retrieves the entries recorded against a business
// document, newest first.
func (s *ledgerService) GetEntriesForReference(ctx context.Context, tenantID string, referenceType, referenceID string) ([]domain.LedgerEntry, error) {
	if referenceType == "" || referenceID == "" {
		return nil, fmt.Errorf("%w: reference type and id are required", apperrors.ErrValidation)
	}
	entries, err := s.ledgerRepo.FindEntriesByReference(ctx, tenantID, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries for %s/%s: %w", referenceType, referenceID, err)
	}
	return entries, nil
}

// ListEntries retrieves a paginated list of entries for a tenant.
func (s *ledgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.ledgerRepo.ListEntriesByTenant(ctx, tenantID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
