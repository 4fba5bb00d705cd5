package mapping

import (
	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/Alialhaj1/SLMS-sub007/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:           d.EntryID,
		TenantID:          d.TenantID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		EntryType:         string(d.EntryType),
		ReferenceType:     d.ReferenceType,
		ReferenceID:       d.ReferenceID,
		ReferenceNumber:   d.ReferenceNumber,
		Description:       d.Description,
		DescriptionAr:     d.DescriptionAr,
		CurrencyCode:      d.CurrencyCode,
		ExchangeRate:      d.ExchangeRate,
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		Status:            models.EntryStatus(d.Status),
		ReversedByEntryID: d.ReversedByEntryID,
		ReversingEntryID:  d.ReversingEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		TenantID:          m.TenantID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		EntryType:         domain.EntryType(m.EntryType),
		ReferenceType:     m.ReferenceType,
		ReferenceID:       m.ReferenceID,
		ReferenceNumber:   m.ReferenceNumber,
		Description:       m.Description,
		DescriptionAr:     m.DescriptionAr,
		CurrencyCode:      m.CurrencyCode,
		ExchangeRate:      m.ExchangeRate,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		Status:            domain.EntryStatus(m.Status),
		ReversedByEntryID: m.ReversedByEntryID,
		ReversingEntryID:  m.ReversingEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.Account.AccountID,
		AccountCode:    d.Account.AccountCode,
		Description:    d.Description,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		CostCenterID:   d.CostCenterID,
		ProjectID:      d.ProjectID,
		DepartmentID:   d.DepartmentID,
		CounterpartyID: d.CounterpartyID,
		ItemID:         d.ItemID,
		WarehouseID:    d.WarehouseID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		LineNumber:     m.LineNumber,
		Account:        domain.AccountRef{AccountID: m.AccountID, AccountCode: m.AccountCode},
		Description:    m.Description,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		CostCenterID:   m.CostCenterID,
		ProjectID:      m.ProjectID,
		DepartmentID:   m.DepartmentID,
		CounterpartyID: m.CounterpartyID,
		ItemID:         m.ItemID,
		WarehouseID:    m.WarehouseID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerLineSlice converts a slice of model LedgerLines to domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		NameAr:      m.NameAr,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
