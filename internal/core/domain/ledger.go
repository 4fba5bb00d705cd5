package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a ledger entry.
// A POSTED entry becomes REVERSED when a contra entry is created for it;
// the contra entry itself carries REVERSING. There is no draft state.
type EntryStatus string

const (
	StatusPosted    EntryStatus = "POSTED"
	StatusReversed  EntryStatus = "REVERSED"
	StatusReversing EntryStatus = "REVERSING"
)

// EntryType tags the business event an entry records.
type EntryType string

const (
	EntryTypePurchaseInvoice    EntryType = "purchase_invoice"
	EntryTypeSalesInvoice       EntryType = "sales_invoice"
	EntryTypeSalesReturn        EntryType = "sales_return"
	EntryTypePaymentVoucher     EntryType = "payment_voucher"
	EntryTypeReceiptVoucher     EntryType = "receipt_voucher"
	EntryTypeCustomsDeclaration EntryType = "customs_declaration"
	EntryTypeShipmentCost       EntryType = "shipment_cost"
	EntryTypeCashTransaction    EntryType = "cash_transaction"
	EntryTypeManual             EntryType = "manual"
)

// ReversalSuffix marks the entry type of a contra entry.
const ReversalSuffix = "_reversal"

// ReversalType returns the entry type used for this type's contra entries.
func (t EntryType) ReversalType() EntryType {
	return t + EntryType(ReversalSuffix)
}

// IsReversal reports whether the type tags a contra entry.
func (t EntryType) IsReversal() bool {
	return strings.HasSuffix(string(t), ReversalSuffix)
}

// BalanceEpsilon is the maximum tolerated difference between an entry's
// total debits and total credits.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// LedgerEntry is one balanced financial record. Entries are append-only:
// after creation only the reversal linkage fields ever change.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	TenantID        string          `json:"tenantID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	EntryType       EntryType       `json:"entryType"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     *string         `json:"referenceID,omitempty"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	DescriptionAr   string          `json:"descriptionAr"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	Status          EntryStatus     `json:"status"`
	// ReversedByEntryID points from a REVERSED original to its contra entry;
	// ReversingEntryID points from a REVERSING contra entry back to the original.
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`
	ReversingEntryID  *string `json:"reversingEntryID,omitempty"`
	AuditFields
	Lines []LedgerLine `json:"lines,omitempty"`
}

// LedgerLine is a single debit or credit within an entry. Lines are owned by
// their entry and immutable once written.
type LedgerLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"` // 1-based, dense
	Account      AccountRef      `json:"account"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	// Dimensional tags, relation-only.
	CostCenterID   *string `json:"costCenterID,omitempty"`
	ProjectID      *string `json:"projectID,omitempty"`
	DepartmentID   *string `json:"departmentID,omitempty"`
	CounterpartyID *string `json:"counterpartyID,omitempty"`
	ItemID         *string `json:"itemID,omitempty"`
	WarehouseID    *string `json:"warehouseID,omitempty"`
	AuditFields
}

// Reversed returns a copy of the line with the debit and credit amounts
// swapped. Account reference and dimensional tags are preserved.
func (l LedgerLine) Reversed() LedgerLine {
	rev := l
	rev.DebitAmount = l.CreditAmount
	rev.CreditAmount = l.DebitAmount
	return rev
}

// EntryTotals sums the debit and credit amounts of a line set.
func EntryTotals(lines []LedgerLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.DebitAmount)
		totalCredit = totalCredit.Add(l.CreditAmount)
	}
	return totalDebit, totalCredit
}

// Balanced reports whether the two totals differ by no more than BalanceEpsilon.
func Balanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceEpsilon)
}
