package domain

// AccountRef points a ledger line at an account. A line created from a code
// that could not be resolved against the account directory keeps the raw
// code so downstream consumers can distinguish "no account" from a typo.
type AccountRef struct {
	AccountID   *string `json:"accountID,omitempty"`
	AccountCode string  `json:"accountCode,omitempty"`
}

// ResolvedRef returns an AccountRef backed by a directory account id.
func ResolvedRef(accountID, code string) AccountRef {
	return AccountRef{AccountID: &accountID, AccountCode: code}
}

// UnresolvedRef returns an AccountRef carrying only a raw account code.
func UnresolvedRef(code string) AccountRef {
	return AccountRef{AccountCode: code}
}

// Resolved reports whether the reference is backed by a directory account.
func (r AccountRef) Resolved() bool {
	return r.AccountID != nil && *r.AccountID != ""
}

// Account is a row in the tenant's account directory, consumed by the ledger
// poster to resolve line account codes. Directory maintenance lives outside
// this core.
type Account struct {
	AccountID string `json:"accountID"`
	TenantID  string `json:"tenantID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NameAr    string `json:"nameAr"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
