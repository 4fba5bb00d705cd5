package dto

import (
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineInput is one line of a create-entry request. An account may be
// given either by directory id or by raw code; codes are resolved against
// the account directory at posting time.
type EntryLineInput struct {
	AccountID      *string         `json:"accountID,omitempty"`
	AccountCode    string          `json:"accountCode,omitempty"`
	Description    string          `json:"description,omitempty"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	ProjectID      *string         `json:"projectID,omitempty"`
	DepartmentID   *string         `json:"departmentID,omitempty"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	ItemID         *string         `json:"itemID,omitempty"`
	WarehouseID    *string         `json:"warehouseID,omitempty"`
}

// CreateEntryRequest is the payload for posting a ledger entry.
type CreateEntryRequest struct {
	EntryDate       time.Time        `json:"entryDate" binding:"required"`
	EntryType       string           `json:"entryType" binding:"required"`
	ReferenceType   string           `json:"referenceType,omitempty"`
	ReferenceID     *string          `json:"referenceID,omitempty"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	Description     string           `json:"description" binding:"required"`
	DescriptionAr   string           `json:"descriptionAr,omitempty"`
	CurrencyCode    string           `json:"currencyCode,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	Lines           []EntryLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest is the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams holds query parameters for listing entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// EntryLineResponse defines the data returned for a ledger line.
type EntryLineResponse struct {
	LineID         string          `json:"lineID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      *string         `json:"accountID,omitempty"`
	AccountCode    string          `json:"accountCode,omitempty"`
	Description    string          `json:"description,omitempty"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	ProjectID      *string         `json:"projectID,omitempty"`
	DepartmentID   *string         `json:"departmentID,omitempty"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	ItemID         *string         `json:"itemID,omitempty"`
	WarehouseID    *string         `json:"warehouseID,omitempty"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	EntryNumber       string              `json:"entryNumber"`
	EntryDate         time.Time           `json:"entryDate"`
	EntryType         string              `json:"entryType"`
	ReferenceType     string              `json:"referenceType,omitempty"`
	ReferenceID       *string             `json:"referenceID,omitempty"`
	ReferenceNumber   string              `json:"referenceNumber,omitempty"`
	Description       string              `json:"description"`
	DescriptionAr     string              `json:"descriptionAr,omitempty"`
	CurrencyCode      string              `json:"currencyCode"`
	ExchangeRate      decimal.Decimal     `json:"exchangeRate"`
	TotalDebit        decimal.Decimal     `json:"totalDebit"`
	TotalCredit       decimal.Decimal     `json:"totalCredit"`
	Status            string              `json:"status"`
	ReversedByEntryID *string             `json:"reversedByEntryID,omitempty"`
	ReversingEntryID  *string             `json:"reversingEntryID,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is the paginated entry listing payload.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain LedgerLine to its response DTO.
func ToEntryLineResponse(l *domain.LedgerLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         l.LineID,
		LineNumber:     l.LineNumber,
		AccountID:      l.Account.AccountID,
		AccountCode:    l.Account.AccountCode,
		Description:    l.Description,
		DebitAmount:    l.DebitAmount,
		CreditAmount:   l.CreditAmount,
		CostCenterID:   l.CostCenterID,
		ProjectID:      l.ProjectID,
		DepartmentID:   l.DepartmentID,
		CounterpartyID: l.CounterpartyID,
		ItemID:         l.ItemID,
		WarehouseID:    l.WarehouseID,
	}
}

// ToEntryResponse converts a domain LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		EntryType:         string(e.EntryType),
		ReferenceType:     e.ReferenceType,
		ReferenceID:       e.ReferenceID,
		ReferenceNumber:   e.ReferenceNumber,
		Description:       e.Description,
		DescriptionAr:     e.DescriptionAr,
		CurrencyCode:      e.CurrencyCode,
		ExchangeRate:      e.ExchangeRate,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		Status:            string(e.Status),
		ReversedByEntryID: e.ReversedByEntryID,
		ReversingEntryID:  e.ReversingEntryID,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain entries to response DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
