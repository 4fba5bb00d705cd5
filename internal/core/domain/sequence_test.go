package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Alialhaj1/SLMS-sub007/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceCounterDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := domain.NewSequenceCounter("tenant-1", domain.DocTypePurchaseOrder, now)

	assert.Equal(t, "PO", c.Prefix)
	assert.Equal(t, "-", c.Separator)
	assert.Equal(t, 4, c.PadWidth)
	assert.Equal(t, domain.ResetYearly, c.ResetPolicy)
	assert.True(t, c.IncludeFiscalYear)
	assert.Equal(t, domain.FiscalYearFourDigit, c.FiscalYearFormat)
	assert.Equal(t, int64(0), c.CurrentNumber)
	assert.Equal(t, 2025, c.FiscalYear)
	assert.Equal(t, 3, c.FiscalMonth)
}

func TestDefaultPrefixFallback(t *testing.T) {
	assert.Equal(t, "JE", domain.DefaultPrefix(domain.DocTypeJournalEntry))
	assert.Equal(t, "INV", domain.DefaultPrefix(domain.DocTypeSalesInvoice))
	assert.Equal(t, "DOC", domain.DefaultPrefix(domain.DocumentType("something_custom")))
}

func TestNextValue(t *testing.T) {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("continues within same fiscal year", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.CurrentNumber = 41

		seq, reset := c.NextValue(base.AddDate(0, 2, 0))
		assert.Equal(t, int64(42), seq)
		assert.False(t, reset)
	})

	t.Run("yearly policy resets across year boundary", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.CurrentNumber = 9000

		seq, reset := c.NextValue(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, int64(1), seq)
		assert.True(t, reset)
	})

	t.Run("monthly policy resets across month boundary", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypeCashTransaction, base)
		c.ResetPolicy = domain.ResetMonthly
		c.CurrentNumber = 17

		seq, reset := c.NextValue(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, int64(1), seq)
		assert.True(t, reset)

		seq, reset = c.NextValue(time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC))
		assert.Equal(t, int64(18), seq)
		assert.False(t, reset)
	})

	t.Run("never policy never resets", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypeShipment, base)
		c.ResetPolicy = domain.ResetNever
		c.CurrentNumber = 123

		seq, reset := c.NextValue(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, int64(124), seq)
		assert.False(t, reset)
	})

	// NextValue must not mutate the receiver.
	t.Run("does not mutate the counter", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.CurrentNumber = 5

		_, _ = c.NextValue(base)
		assert.Equal(t, int64(5), c.CurrentNumber)
	})
}

func TestAllocate(t *testing.T) {
	base := time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC)

	t.Run("advances sequentially", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)

		assert.Equal(t, int64(1), c.Allocate(base))
		assert.Equal(t, int64(2), c.Allocate(base))
		assert.Equal(t, int64(3), c.Allocate(base))
		assert.Equal(t, int64(3), c.CurrentNumber)
		assert.Nil(t, c.LastResetAt)
	})

	t.Run("rolls fiscal fields on reset", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.CurrentNumber = 250

		next := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		seq := c.Allocate(next)

		assert.Equal(t, int64(1), seq)
		assert.Equal(t, 2026, c.FiscalYear)
		assert.Equal(t, 2, c.FiscalMonth)
		require.NotNil(t, c.LastResetAt)
		assert.Equal(t, next, *c.LastResetAt)
	})
}

func TestFormat(t *testing.T) {
	base := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("default purchase order shape", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		assert.Equal(t, "PO-2025-0001", c.Format(1, 2025, ""))
	})

	t.Run("two digit fiscal year", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypeSalesInvoice, base)
		c.FiscalYearFormat = domain.FiscalYearTwoDigit
		assert.Equal(t, "INV-25-0042", c.Format(42, 2025, ""))
	})

	t.Run("branch code included only when configured", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		assert.Equal(t, "PO-2025-0007", c.Format(7, 2025, "RYD"))

		c.IncludeBranchCode = true
		assert.Equal(t, "PO-RYD-2025-0007", c.Format(7, 2025, "RYD"))
		// Configured but no code supplied
		assert.Equal(t, "PO-2025-0007", c.Format(7, 2025, ""))
	})

	t.Run("suffix and custom separator", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypeCustomsDeclaration, base)
		c.Separator = "/"
		c.Suffix = "KSA"
		assert.Equal(t, "CD/2025/0003/KSA", c.Format(3, 2025, ""))
	})

	t.Run("no fiscal year segment", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypeShipment, base)
		c.IncludeFiscalYear = false
		assert.Equal(t, "SHP-0100", c.Format(100, 2025, ""))
	})

	t.Run("values wider than the pad are not truncated", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		assert.Equal(t, "PO-2025-10000", c.Format(10000, 2025, ""))
	})

	t.Run("zero pad width falls back to default", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.PadWidth = 0
		assert.Equal(t, "PO-2025-0009", c.Format(9, 2025, ""))
	})

	t.Run("custom pad width", func(t *testing.T) {
		c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, base)
		c.PadWidth = 6
		assert.Equal(t, "PO-2025-000123", c.Format(123, 2025, ""))
	})
}

func TestAllocateThenFormatAcrossYears(t *testing.T) {
	c := domain.NewSequenceCounter("t1", domain.DocTypePurchaseOrder, time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC))

	seq := c.Allocate(time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "PO-2025-0001", c.Format(seq, c.FiscalYear, ""))

	seq = c.Allocate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, fmt.Sprintf("PO-2026-%04d", 1), c.Format(seq, c.FiscalYear, ""))
}
