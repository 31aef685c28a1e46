package masterdata

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactKind(t *testing.T) {
	assert.True(t, ContactKindCustomer.IsValid())
	assert.True(t, ContactKindVendor.IsValid())
	assert.True(t, ContactKindBoth.IsValid())
	assert.False(t, ContactKind("supplier").IsValid())

	assert.True(t, ContactKindCustomer.CanSell())
	assert.False(t, ContactKindCustomer.CanBuy())
	assert.True(t, ContactKindVendor.CanBuy())
	assert.False(t, ContactKindVendor.CanSell())
	assert.True(t, ContactKindBoth.CanSell())
	assert.True(t, ContactKindBoth.CanBuy())
}

func TestNewContact(t *testing.T) {
	c, err := NewContact("Azure Interiors", ContactKindVendor, "azure@example.com", "9876543210", Address{City: "Mumbai", State: "MH", Pincode: "400001"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, ContactKindVendor, c.Kind)

	_, err = NewContact("", ContactKindVendor, "", "", Address{})
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	_, err = NewContact("X", ContactKind("nope"), "", "", Address{})
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
}

func TestContact_UpdateProfileKeepsIdentity(t *testing.T) {
	c, err := NewContact("Nimesh Pathak", ContactKindCustomer, "nimesh@example.com", "9999999999", Address{})
	require.NoError(t, err)
	id := c.ID

	require.NoError(t, c.UpdateProfile("Nimesh P.", ContactKindBoth, "np@example.com", "8888888888", Address{City: "Pune"}))
	assert.Equal(t, id, c.ID)
	assert.Equal(t, ContactKindBoth, c.Kind)
	assert.Equal(t, "Pune", c.Address.City)
}

func TestContact_Matches(t *testing.T) {
	c, err := NewContact("Azure Interiors", ContactKindVendor, "azure@example.com", "", Address{})
	require.NoError(t, err)

	assert.True(t, c.Matches(""))
	assert.True(t, c.Matches("azure"))
	assert.True(t, c.Matches("INTERIORS"))
	assert.True(t, c.Matches("example.com"))
	assert.False(t, c.Matches("wooden"))
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Office Chair", ProductKindGoods,
		decimal.NewFromInt(8500), decimal.NewFromInt(6500),
		decimal.NewFromInt(18), decimal.NewFromInt(18), "9401", "Furniture")
	require.NoError(t, err)
	assert.True(t, p.IsGoods())

	tests := []struct {
		name    string
		mutate  func() error
		message string
	}{
		{"empty name", func() error {
			_, err := NewProduct("  ", ProductKindGoods, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, "", "")
			return err
		}, "name"},
		{"bad kind", func() error {
			_, err := NewProduct("X", ProductKind("digital"), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, "", "")
			return err
		}, "kind"},
		{"negative price", func() error {
			_, err := NewProduct("X", ProductKindGoods, decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, decimal.Zero, "", "")
			return err
		}, "price"},
		{"tax rate over 100", func() error {
			_, err := NewProduct("X", ProductKindGoods, decimal.Zero, decimal.Zero, decimal.NewFromInt(101), decimal.Zero, "", "")
			return err
		}, "tax"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate()
			assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
		})
	}
}

func TestNewTax(t *testing.T) {
	tax, err := NewTax("GST 18%", TaxMethodPercentage, decimal.NewFromInt(18), TaxScopeBoth)
	require.NoError(t, err)
	assert.Equal(t, TaxMethodPercentage, tax.Method)

	_, err = NewTax("GST", TaxMethod("flat"), decimal.NewFromInt(18), TaxScopeBoth)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	_, err = NewTax("GST", TaxMethodFixed, decimal.NewFromInt(-5), TaxScopeSales)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	_, err = NewTax("GST", TaxMethodFixed, decimal.NewFromInt(5), TaxScope("everything"))
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
}

func TestNewAccount(t *testing.T) {
	root, err := NewAccount("Current Assets", AccountTypeAsset, nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)

	child, err := NewAccount("Bank", AccountTypeAsset, &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = NewAccount("", AccountTypeAsset, nil)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	_, err = NewAccount("X", AccountType("revenue"), nil)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))
}

func TestAccount_CloneIsDeep(t *testing.T) {
	root, err := NewAccount("Assets", AccountTypeAsset, nil)
	require.NoError(t, err)
	child, err := NewAccount("Cash", AccountTypeAsset, &root.ID)
	require.NoError(t, err)

	cp := child.Clone()
	other := uuid.New()
	*cp.ParentID = other

	assert.Equal(t, root.ID, *child.ParentID, "mutating the clone must not touch the original")
}
