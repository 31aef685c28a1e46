package masterdata

import (
	"strings"

	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductKind classifies a product as physical goods or a service
type ProductKind string

const (
	ProductKindGoods   ProductKind = "goods"
	ProductKindService ProductKind = "service"
)

// IsValid checks if the kind is a valid ProductKind
func (k ProductKind) IsValid() bool {
	return k == ProductKindGoods || k == ProductKindService
}

// String returns the string representation of ProductKind
func (k ProductKind) String() string {
	return string(k)
}

// Product is a sellable/purchasable item. Goods participate in the stock
// ledger; services do not.
type Product struct {
	shared.BaseEntity
	Name            string          `json:"name"`
	Kind            ProductKind     `json:"kind"`
	SalesPrice      decimal.Decimal `json:"sales_price"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SaleTaxRate     decimal.Decimal `json:"sale_tax_rate"`
	PurchaseTaxRate decimal.Decimal `json:"purchase_tax_rate"`
	HSNCode         string          `json:"hsn_code"`
	Category        string          `json:"category"`
}

var maxTaxRate = decimal.NewFromInt(100)

func validateProductFields(name string, kind ProductKind, salesPrice, purchasePrice, saleTaxRate, purchaseTaxRate decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if !kind.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid product kind %q", kind)
	}
	if salesPrice.IsNegative() || purchasePrice.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Prices cannot be negative")
	}
	if saleTaxRate.IsNegative() || saleTaxRate.GreaterThan(maxTaxRate) ||
		purchaseTaxRate.IsNegative() || purchaseTaxRate.GreaterThan(maxTaxRate) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tax rates must be between 0 and 100")
	}
	return nil
}

// NewProduct creates a new product
func NewProduct(name string, kind ProductKind, salesPrice, purchasePrice, saleTaxRate, purchaseTaxRate decimal.Decimal, hsnCode, category string) (*Product, error) {
	if err := validateProductFields(name, kind, salesPrice, purchasePrice, saleTaxRate, purchaseTaxRate); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Kind:            kind,
		SalesPrice:      salesPrice,
		PurchasePrice:   purchasePrice,
		SaleTaxRate:     saleTaxRate,
		PurchaseTaxRate: purchaseTaxRate,
		HSNCode:         hsnCode,
		Category:        category,
	}, nil
}

// Update updates the mutable product fields
func (p *Product) Update(name string, kind ProductKind, salesPrice, purchasePrice, saleTaxRate, purchaseTaxRate decimal.Decimal, hsnCode, category string) error {
	if err := validateProductFields(name, kind, salesPrice, purchasePrice, saleTaxRate, purchaseTaxRate); err != nil {
		return err
	}

	p.Name = name
	p.Kind = kind
	p.SalesPrice = salesPrice
	p.PurchasePrice = purchasePrice
	p.SaleTaxRate = saleTaxRate
	p.PurchaseTaxRate = purchaseTaxRate
	p.HSNCode = hsnCode
	p.Category = category
	p.Touch()
	return nil
}

// IsGoods reports whether the product participates in the stock ledger
func (p *Product) IsGoods() bool {
	return p.Kind == ProductKindGoods
}

// Matches reports whether the product matches a free-text search over
// name and category (case-insensitive)
func (p *Product) Matches(search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), s) ||
		strings.Contains(strings.ToLower(p.Category), s)
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	cp := *p
	return &cp
}
