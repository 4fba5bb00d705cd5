package mapping

import (
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/Alialhaj1/SLMS-sub007/internal/models"
)

// ToModelSequenceCounter converts a domain SequenceCounter to a model SequenceCounter
func ToModelSequenceCounter(d domain.SequenceCounter) models.SequenceCounter {
	return models.SequenceCounter{
		TenantID:          d.TenantID,
		DocumentType:      string(d.DocumentType),
		Prefix:            d.Prefix,
		Suffix:            d.Suffix,
		Separator:         d.Separator,
		PadWidth:          d.PadWidth,
		ResetPolicy:       string(d.ResetPolicy),
		IncludeFiscalYear: d.IncludeFiscalYear,
		FiscalYearFormat:  string(d.FiscalYearFormat),
		IncludeBranchCode: d.IncludeBranchCode,
		CurrentNumber:     d.CurrentNumber,
		FiscalYear:        d.FiscalYear,
		FiscalMonth:       d.FiscalMonth,
		LastResetAt:       d.LastResetAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSequenceCounter converts a model SequenceCounter to a domain SequenceCounter
func ToDomainSequenceCounter(m models.SequenceCounter) domain.SequenceCounter {
	return domain.SequenceCounter{
		TenantID:          m.TenantID,
		DocumentType:      domain.DocumentType(m.DocumentType),
		Prefix:            m.Prefix,
		Suffix:            m.Suffix,
		Separator:         m.Separator,
		PadWidth:          m.PadWidth,
		ResetPolicy:       domain.ResetPolicy(m.ResetPolicy),
		IncludeFiscalYear: m.IncludeFiscalYear,
		FiscalYearFormat:  domain.FiscalYearFormat(m.FiscalYearFormat),
		IncludeBranchCode: m.IncludeBranchCode,
		CurrentNumber:     m.CurrentNumber,
		FiscalYear:        m.FiscalYear,
		FiscalMonth:       m.FiscalMonth,
		LastResetAt:       m.LastResetAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
