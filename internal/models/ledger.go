package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a ledger entry row.
type EntryStatus string

const (
	Posted    EntryStatus = "POSTED"
	Reversed  EntryStatus = "REVERSED"
	Reversing EntryStatus = "REVERSING"
)

// LedgerEntry mirrors the ledger_entries table.
type LedgerEntry struct {
	EntryID           string          `json:"entryID"`
	TenantID          string          `json:"tenantID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	EntryType         string          `json:"entryType"`
	ReferenceType     string          `json:"referenceType"`
	ReferenceID       *string         `json:"referenceID,omitempty"`
	ReferenceNumber   string          `json:"referenceNumber"`
	Description       string          `json:"description"`
	DescriptionAr     string          `json:"descriptionAr"`
	CurrencyCode      string          `json:"currencyCode"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	Status            EntryStatus     `json:"status"`
	ReversedByEntryID *string         `json:"reversedByEntryID,omitempty"`
	ReversingEntryID  *string         `json:"reversingEntryID,omitempty"`
	AuditFields
}

// LedgerLine mirrors the ledger_lines table. AccountID is NULL when the
// line was stored with an account code that did not resolve.
type LedgerLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	LineNumber     int             `json:"lineNumber"`
	AccountID      *string         `json:"accountID,omitempty"`
	AccountCode    string          `json:"accountCode"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	ProjectID      *string         `json:"projectID,omitempty"`
	DepartmentID   *string         `json:"departmentID,omitempty"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	ItemID         *string         `json:"itemID,omitempty"`
	WarehouseID    *string         `json:"warehouseID,omitempty"`
	AuditFields
}
