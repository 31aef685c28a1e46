package pricing

import (
	"testing"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		taxRate   string
		subtotal  string
		tax       string
		total     string
	}{
		{"purchase scenario", "2", "6500", "18", "13000.00", "2340.00", "15340.00"},
		{"sales scenario", "2", "8500", "18", "17000.00", "3060.00", "20060.00"},
		{"zero tax", "3", "100", "0", "300.00", "0.00", "300.00"},
		{"full tax", "1", "50", "100", "50.00", "50.00", "100.00"},
		{"zero price", "5", "0", "18", "0.00", "0.00", "0.00"},
		{"fractional price", "3", "33.33", "12", "99.99", "12.00", "111.99"},
		{"rounding half up", "1", "0.05", "10", "0.05", "0.01", "0.06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLine(d(tt.quantity), d(tt.unitPrice), d(tt.taxRate))
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, got.Subtotal.StringFixed(2), "subtotal")
			assert.Equal(t, tt.tax, got.Tax.StringFixed(2), "tax")
			assert.Equal(t, tt.total, got.Total.StringFixed(2), "total")
			assert.True(t, got.Total.GreaterThanOrEqual(got.Subtotal), "total >= subtotal")
		})
	}
}

func TestComputeLine_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		taxRate   string
	}{
		{"zero quantity", "0", "100", "18"},
		{"negative quantity", "-1", "100", "18"},
		{"negative price", "1", "-100", "18"},
		{"negative tax rate", "1", "100", "-1"},
		{"tax rate over 100", "1", "100", "100.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(d(tt.quantity), d(tt.unitPrice), d(tt.taxRate))
			require.Error(t, err)
			assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
		})
	}
}

func TestComputeLine_TotalMatchesClosedForm(t *testing.T) {
	// total must equal round(q*p*(1+r/100), 2) computed in one step
	q, p, r := d("7"), d("123.45"), d("18")
	got, err := ComputeLine(q, p, r)
	require.NoError(t, err)

	closed := q.Mul(p).Mul(decimal.NewFromInt(1).Add(r.Div(decimal.NewFromInt(100)))).Round(2)
	assert.True(t, got.Total.Equal(closed))
}
