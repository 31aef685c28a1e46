package masterdata

import (
	"strings"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxMethod is how a tax is computed
type TaxMethod string

const (
	TaxMethodPercentage TaxMethod = "percentage"
	TaxMethodFixed      TaxMethod = "fixed"
)

// IsValid checks if the method is a valid TaxMethod
func (m TaxMethod) IsValid() bool {
	return m == TaxMethodPercentage || m == TaxMethodFixed
}

// String returns the string representation of TaxMethod
func (m TaxMethod) String() string {
	return string(m)
}

// TaxScope is the transaction side a tax applies to
type TaxScope string

const (
	TaxScopeSales    TaxScope = "sales"
	TaxScopePurchase TaxScope = "purchase"
	TaxScopeBoth     TaxScope = "both"
)

// IsValid checks if the scope is a valid TaxScope
func (s TaxScope) IsValid() bool {
	switch s {
	case TaxScopeSales, TaxScopePurchase, TaxScopeBoth:
		return true
	}
	return false
}

// String returns the string representation of TaxScope
func (s TaxScope) String() string {
	return string(s)
}

// Tax is informational master data consulted by the UI when picking rates.
// Order lines carry their own resolved rate, so nothing references a Tax
// record and it may be deleted at any time.
type Tax struct {
	shared.BaseEntity
	Name      string          `json:"name"`
	Method    TaxMethod       `json:"method"`
	Rate      decimal.Decimal `json:"rate"`
	AppliesTo TaxScope        `json:"applies_to"`
}

func validateTaxFields(name string, method TaxMethod, rate decimal.Decimal, appliesTo TaxScope) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tax name cannot be empty")
	}
	if !method.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid tax method %q", method)
	}
	if rate.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tax rate cannot be negative")
	}
	if !appliesTo.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid tax scope %q", appliesTo)
	}
	return nil
}

// NewTax creates a new tax record
func NewTax(name string, method TaxMethod, rate decimal.Decimal, appliesTo TaxScope) (*Tax, error) {
	if err := validateTaxFields(name, method, rate, appliesTo); err != nil {
		return nil, err
	}

	return &Tax{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Method:     method,
		Rate:       rate,
		AppliesTo:  appliesTo,
	}, nil
}

// Update updates the tax record
func (t *Tax) Update(name string, method TaxMethod, rate decimal.Decimal, appliesTo TaxScope) error {
	if err := validateTaxFields(name, method, rate, appliesTo); err != nil {
		return err
	}

	t.Name = name
	t.Method = method
	t.Rate = rate
	t.AppliesTo = appliesTo
	t.Touch()
	return nil
}

// Matches reports whether the tax matches a free-text search over its name
func (t *Tax) Matches(search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(search))
}

// Clone returns a deep copy of the tax record
func (t *Tax) Clone() *Tax {
	cp := *t
	return &cp
}
