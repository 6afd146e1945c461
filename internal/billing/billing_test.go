package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardinghub/boardinghub/internal/billing"
)

func TestNewPeriod(t *testing.T) {
	p := billing.NewPeriod(2026, time.February)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), p.To)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.February, p.Month)
}

func TestFormatInvoiceID(t *testing.T) {
	assert.Equal(t, "INV-2026-001", billing.FormatInvoiceID(2026, 1))
	assert.Equal(t, "INV-2026-042", billing.FormatInvoiceID(2026, 42))
	assert.Equal(t, "INV-2027-1205", billing.FormatInvoiceID(2027, 1205))
}

func TestNewReceiptID(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "RCP-1772366400000", billing.NewReceiptID(now))
}

func TestBreakdown_Total(t *testing.T) {
	b := billing.Breakdown{
		{Name: "electricity", AmountCents: 1200},
		{Name: "water", AmountCents: 200},
		{Name: "wifi", AmountCents: 0},
	}

	assert.Equal(t, int64(1400), b.Total())
}
