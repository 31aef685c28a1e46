// Package pricing implements the tax and pricing calculator. It is the single
// authority for line-level amounts: every order item in the system gets its
// subtotal, tax and total from ComputeLine, so all callers see identical
// rounding behaviour.
package pricing

import (
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineAmounts holds the computed amounts for one order line, each rounded
// half-up to the currency's minor unit. Rounding happens exactly once, here;
// aggregation over lines must never re-round.
type LineAmounts struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLine computes subtotal, tax and total for one order line.
//
//	subtotal = quantity * unitPrice
//	tax      = subtotal * taxRate / 100
//	total    = subtotal + tax
//
// The total is rounded from the unrounded parts, so it always equals
// round(quantity * unitPrice * (1 + taxRate/100), 2) and is never less than
// the subtotal.
func ComputeLine(quantity, unitPrice, taxRate decimal.Decimal) (LineAmounts, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineAmounts{}, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return LineAmounts{}, shared.NewDomainError(shared.CodeInvalidInput, "Tax rate must be between 0 and 100")
	}

	subtotal := quantity.Mul(unitPrice)
	tax := subtotal.Mul(taxRate).Div(hundred)
	total := subtotal.Add(tax)

	return LineAmounts{
		Subtotal: subtotal.Round(valueobject.MinorUnitPlaces),
		Tax:      tax.Round(valueobject.MinorUnitPlaces),
		Total:    total.Round(valueobject.MinorUnitPlaces),
	}, nil
}
