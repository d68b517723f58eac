package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaturityValue(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		term     int
		rate     string
		expected string
	}{
		{"zero rate returns principal", "10000", 12, "0", "10000.00"},
		{"one month at 12 percent", "10000", 1, "12", "10100.00"},
		{"one year at 12 percent compounds monthly", "10000", 12, "12", "11268.25"},
		{"two years at 6 percent", "50000", 24, "6", "56357.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			rate := decimal.RequireFromString(tt.rate)
			got := MaturityValue(amount, tt.term, rate)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestNewQuotation(t *testing.T) {
	creator := uuid.New()
	client := uuid.New()

	q, err := NewQuotation(creator, client, decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)
	assert.Equal(t, QuotationStatusDraft, q.Status)
	assert.Equal(t, "11268.25", q.MaturityValue.StringFixed(2))
	assert.Nil(t, q.SentAt)
}

func TestNewQuotationValidation(t *testing.T) {
	creator := uuid.New()
	client := uuid.New()
	rate := decimal.RequireFromString("8")

	_, err := NewQuotation(creator, client, decimal.Zero, 12, rate)
	assert.Error(t, err)

	_, err = NewQuotation(creator, client, decimal.RequireFromString("-100"), 12, rate)
	assert.Error(t, err)

	_, err = NewQuotation(creator, client, decimal.RequireFromString("100"), 0, rate)
	assert.Error(t, err)

	_, err = NewQuotation(creator, client, decimal.RequireFromString("100"), 12, decimal.RequireFromString("-1"))
	assert.Error(t, err)
}

func TestQuotationLifecycle(t *testing.T) {
	q, err := NewQuotation(uuid.New(), uuid.New(), decimal.RequireFromString("5000"), 24, decimal.RequireFromString("9.25"))
	require.NoError(t, err)

	// Accepting a draft is not allowed
	assert.Error(t, q.Accept())

	require.NoError(t, q.MarkSent())
	assert.Equal(t, QuotationStatusSent, q.Status)
	require.NotNil(t, q.SentAt)

	require.NoError(t, q.Accept())
	assert.Equal(t, QuotationStatusAccepted, q.Status)

	// Accepted quotations are frozen
	assert.Error(t, q.MarkSent())
	assert.Error(t, q.Accept())
}

func TestNewInterestRate(t *testing.T) {
	r, err := NewInterestRate(12, decimal.RequireFromString("8.5"))
	require.NoError(t, err)
	assert.Equal(t, 12, r.TermMonths)

	_, err = NewInterestRate(0, decimal.RequireFromString("8.5"))
	assert.Error(t, err)

	_, err = NewInterestRate(12, decimal.RequireFromString("-1"))
	assert.Error(t, err)

	assert.Error(t, r.UpdateRate(decimal.RequireFromString("-2")))
	require.NoError(t, r.UpdateRate(decimal.RequireFromString("9")))
	assert.True(t, r.AnnualRate.Equal(decimal.RequireFromString("9")))
}
