package dto

import (
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
)

// GenerateNumberRequest is the payload for allocating a document number.
type GenerateNumberRequest struct {
	BranchCode string `json:"branchCode,omitempty"`
}

// GeneratedNumberResponse is the result of one allocation (or a preview).
type GeneratedNumberResponse struct {
	Number     string `json:"number"`
	Sequence   int64  `json:"sequence,omitempty"`
	FiscalYear int    `json:"fiscalYear,omitempty"`
}

// UpdateCounterConfigRequest carries partial counter configuration updates.
// Nil fields are left unchanged.
type UpdateCounterConfigRequest struct {
	Prefix            *string `json:"prefix,omitempty"`
	Suffix            *string `json:"suffix,omitempty"`
	Separator         *string `json:"separator,omitempty"`
	PadWidth          *int    `json:"padWidth,omitempty" binding:"omitempty,gte=1,lte=12"`
	ResetPolicy       *string `json:"resetPolicy,omitempty" binding:"omitempty,oneof=NEVER MONTHLY YEARLY"`
	IncludeFiscalYear *bool   `json:"includeFiscalYear,omitempty"`
	FiscalYearFormat  *string `json:"fiscalYearFormat,omitempty" binding:"omitempty,oneof=YYYY YY"`
	IncludeBranchCode *bool   `json:"includeBranchCode,omitempty"`
}

// SetCurrentNumberRequest manually overrides a counter value.
type SetCurrentNumberRequest struct {
	CurrentNumber int64 `json:"currentNumber" binding:"gte=0"`
}

// CounterResponse exposes counter configuration and state.
type CounterResponse struct {
	TenantID          string     `json:"tenantID"`
	DocumentType      string     `json:"documentType"`
	Prefix            string     `json:"prefix"`
	Suffix            string     `json:"suffix,omitempty"`
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
}

// ToCounterResponse converts a domain SequenceCounter to its response DTO.
func ToCounterResponse(c *domain.SequenceCounter) CounterResponse {
	return CounterResponse{
		TenantID:          c.TenantID,
		DocumentType:      string(c.DocumentType),
		Prefix:            c.Prefix,
		Suffix:            c.Suffix,
		Separator:         c.Separator,
		PadWidth:          c.PadWidth,
		ResetPolicy:       string(c.ResetPolicy),
		IncludeFiscalYear: c.IncludeFiscalYear,
		FiscalYearFormat:  string(c.FiscalYearFormat),
		IncludeBranchCode: c.IncludeBranchCode,
		CurrentNumber:     c.CurrentNumber,
		FiscalYear:        c.FiscalYear,
		FiscalMonth:       c.FiscalMonth,
		LastResetAt:       c.LastResetAt,
	}
}
