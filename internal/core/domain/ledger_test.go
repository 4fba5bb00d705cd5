package domain_test

import (
	"testing"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReversedSwapsAmounts(t *testing.T) {
	cc := "cc-1"
	line := domain.LedgerLine{
		LineID:       "line-1",
		DebitAmount:  decimal.RequireFromString("150.75"),
		CreditAmount: decimal.Zero,
		Account:      domain.ResolvedRef("acc-1", "1101"),
		CostCenterID: &cc,
	}

	rev := line.Reversed()

	assert.True(t, rev.DebitAmount.IsZero())
	assert.True(t, rev.CreditAmount.Equal(decimal.RequireFromString("150.75")))
	// Account reference and dimensions carry over unchanged
	assert.Equal(t, line.Account, rev.Account)
	assert.Equal(t, &cc, rev.CostCenterID)
	// Original is untouched
	assert.True(t, line.DebitAmount.Equal(decimal.RequireFromString("150.75")))
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.LedgerLine{
		{DebitAmount: decimal.RequireFromString("100.50"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.RequireFromString("49.50"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("150.00")},
	}

	totalDebit, totalCredit := domain.EntryTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, totalCredit.Equal(decimal.RequireFromString("150.00")))
}

func TestBalanced(t *testing.T) {
	testCases := []struct {
		name     string
		debit    string
		credit   string
		balanced bool
	}{
		{"exact match", "100.00", "100.00", true},
		{"difference below epsilon", "100.005", "100.00", true},
		{"difference at epsilon", "100.01", "100.00", true},
		{"difference above epsilon", "100.011", "100.00", false},
		{"large imbalance", "200.00", "100.00", false},
		{"credit heavy within epsilon", "99.99", "100.00", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.Balanced(decimal.RequireFromString(tc.debit), decimal.RequireFromString(tc.credit))
			assert.Equal(t, tc.balanced, got)
		})
	}
}

func TestReversalType(t *testing.T) {
	assert.Equal(t, domain.EntryType("purchase_invoice_reversal"), domain.EntryTypePurchaseInvoice.ReversalType())
	assert.False(t, domain.EntryTypePurchaseInvoice.IsReversal())
	assert.True(t, domain.EntryTypePurchaseInvoice.ReversalType().IsReversal())
	assert.True(t, domain.EntryType("manual_reversal").IsReversal())
}

func TestAccountRef(t *testing.T) {
	resolved := domain.ResolvedRef("acc-1", "1101")
	assert.True(t, resolved.Resolved())
	assert.Equal(t, "1101", resolved.AccountCode)

	unresolved := domain.UnresolvedRef("9999")
	assert.False(t, unresolved.Resolved())
	assert.Nil(t, unresolved.AccountID)
	assert.Equal(t, "9999", unresolved.AccountCode)
}
