package models

// Account mirrors the accounts directory table.
type Account struct {
	AccountID string `json:"accountID"`
	TenantID  string `json:"tenantID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NameAr    string `json:"nameAr"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
