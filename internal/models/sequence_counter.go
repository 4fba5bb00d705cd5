package models

import "time"

// SequenceCounter mirrors the document_sequences table.
type SequenceCounter struct {
	TenantID          string     `json:"tenantID"`
	DocumentType      string     `json:"documentType"`
	Prefix            string     `json:"prefix"`
	Suffix            string     `json:"suffix"`
	Separator         string     `json:"separator"`
	PadWidth          int        `json:"padWidth"`
	ResetPolicy       string     `json:"resetPolicy"`
	IncludeFiscalYear bool       `json:"includeFiscalYear"`
	FiscalYearFormat  string     `json:"fiscalYearFormat"`
	IncludeBranchCode bool       `json:"includeBranchCode"`
	CurrentNumber     int64      `json:"currentNumber"`
	FiscalYear        int        `json:"fiscalYear"`
	FiscalMonth       int        `json:"fiscalMonth"`
	LastResetAt       *time.Time `json:"lastResetAt,omitempty"`
	AuditFields
}
