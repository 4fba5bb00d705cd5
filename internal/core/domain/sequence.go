package domain

import (
	"fmt"
	"strings"
	"time"
)

// ResetPolicy governs when a counter's sequence restarts at 1.
type ResetPolicy string

const (
	ResetNever   ResetPolicy = "NEVER"
	ResetMonthly ResetPolicy = "MONTHLY"
	ResetYearly  ResetPolicy = "YEARLY"
)

// FiscalYearFormat controls how the fiscal year is rendered in a document number.
type FiscalYearFormat string

const (
	FiscalYearFourDigit FiscalYearFormat = "YYYY"
	FiscalYearTwoDigit  FiscalYearFormat = "YY"
)

// DocumentType identifies one independent numbering stream per tenant.
type DocumentType string

const (
	DocTypePurchaseOrder      DocumentType = "purchase_order"
	DocTypePurchaseInvoice    DocumentType = "purchase_invoice"
	DocTypeSalesInvoice       DocumentType = "sales_invoice"
	DocTypeSalesReturn        DocumentType = "sales_return"
	DocTypeJournalEntry       DocumentType = "journal_entry"
	DocTypePaymentVoucher     DocumentType = "payment_voucher"
	DocTypeReceiptVoucher     DocumentType = "receipt_voucher"
	DocTypeCustomsDeclaration DocumentType = "customs_declaration"
	DocTypeShipment           DocumentType = "shipment"
	DocTypeCashTransaction    DocumentType = "cash_transaction"
)

// defaultPrefixes maps each document type to the prefix used when a counter
// is lazily created on first allocation.
var defaultPrefixes = map[DocumentType]string{
	DocTypePurchaseOrder:      "PO",
	DocTypePurchaseInvoice:    "PI",
	DocTypeSalesInvoice:       "INV",
	DocTypeSalesReturn:        "SR",
	DocTypeJournalEntry:       "JE",
	DocTypePaymentVoucher:     "PV",
	DocTypeReceiptVoucher:     "RV",
	DocTypeCustomsDeclaration: "CD",
	DocTypeShipment:           "SHP",
	DocTypeCashTransaction:    "CSH",
}

// DefaultPrefix returns the default numbering prefix for a document type.
func DefaultPrefix(docType DocumentType) string {
	if p, ok := defaultPrefixes[docType]; ok {
		return p
	}
	return "DOC"
}

const (
	DefaultSeparator = "-"
	DefaultPadWidth  = 4
)

// SequenceCounter holds the numbering state for one (tenant, document type) stream.
// It is mutated only under a row-level lock held by the sequence repository.
type SequenceCounter struct {
	TenantID          string           `json:"tenantID"`
	DocumentType      DocumentType     `json:"documentType"`
	Prefix            string           `json:"prefix"`
	Suffix            string           `json:"suffix"`
	Separator         string           `json:"separator"`
	PadWidth          int              `json:"padWidth"`
	ResetPolicy       ResetPolicy      `json:"resetPolicy"`
	IncludeFiscalYear bool             `json:"includeFiscalYear"`
	FiscalYearFormat  FiscalYearFormat `json:"fiscalYearFormat"`
	IncludeBranchCode bool             `json:"includeBranchCode"`
	CurrentNumber     int64            `json:"currentNumber"`
	FiscalYear        int              `json:"fiscalYear"`
	FiscalMonth       int              `json:"fiscalMonth"`
	LastResetAt       *time.Time       `json:"lastResetAt,omitempty"`
	AuditFields
}

// NewSequenceCounter returns a counter with the default configuration for a
// document type, positioned before the first allocation.
func NewSequenceCounter(tenantID string, docType DocumentType, now time.Time) SequenceCounter {
	return SequenceCounter{
		TenantID:          tenantID,
		DocumentType:      docType,
		Prefix:            DefaultPrefix(docType),
		Separator:         DefaultSeparator,
		PadWidth:          DefaultPadWidth,
		ResetPolicy:       ResetYearly,
		IncludeFiscalYear: true,
		FiscalYearFormat:  FiscalYearFourDigit,
		CurrentNumber:     0,
		FiscalYear:        now.Year(),
		FiscalMonth:       int(now.Month()),
	}
}

// NextValue computes the sequence value the next allocation would receive at
// the given instant, and whether a reset boundary has been crossed. It does
// not mutate the counter.
func (c SequenceCounter) NextValue(now time.Time) (seq int64, reset bool) {
	switch c.ResetPolicy {
	case ResetYearly:
		reset = c.FiscalYear != now.Year()
	case ResetMonthly:
		reset = c.FiscalYear != now.Year() || c.FiscalMonth != int(now.Month())
	}
	if reset {
		return 1, true
	}
	return c.CurrentNumber + 1, false
}

// Allocate advances the counter at the given instant and returns the
// allocated sequence value. On a reset it also rolls the fiscal period fields.
func (c *SequenceCounter) Allocate(now time.Time) int64 {
	seq, reset := c.NextValue(now)
	c.CurrentNumber = seq
	if reset {
		c.FiscalYear = now.Year()
		c.FiscalMonth = int(now.Month())
		t := now
		c.LastResetAt = &t
	}
	return seq
}

// Format renders the display number for a sequence value using the counter's
// configuration. The branch code is included only when the counter is
// configured for it and a code was supplied. Padding is a minimum width;
// values wider than the pad are never truncated.
func (c SequenceCounter) Format(sequence int64, fiscalYear int, branchCode string) string {
	sep := c.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	width := c.PadWidth
	if width <= 0 {
		width = DefaultPadWidth
	}

	parts := make([]string, 0, 5)
	if c.Prefix != "" {
		parts = append(parts, c.Prefix)
	}
	if c.IncludeBranchCode && branchCode != "" {
		parts = append(parts, branchCode)
	}
	if c.IncludeFiscalYear {
		parts = append(parts, formatFiscalYear(fiscalYear, c.FiscalYearFormat))
	}
	parts = append(parts, fmt.Sprintf("%0*d", width, sequence))
	if c.Suffix != "" {
		parts = append(parts, c.Suffix)
	}
	return strings.Join(parts, sep)
}

func formatFiscalYear(year int, format FiscalYearFormat) string {
	if format == FiscalYearTwoDigit {
		return fmt.Sprintf("%02d", year%100)
	}
	return fmt.Sprintf("%04d", year)
}

// GeneratedNumber is the result of one sequence allocation.
type GeneratedNumber struct {
	Number     string `json:"number"`
	Sequence   int64  `json:"sequence"`
	FiscalYear int    `json:"fiscalYear"`
}
