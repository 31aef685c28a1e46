package masterdata

import (
	"strings"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// ContactKind classifies a contact as customer, vendor or both
type ContactKind string

const (
	ContactKindCustomer ContactKind = "customer"
	ContactKindVendor   ContactKind = "vendor"
	ContactKindBoth     ContactKind = "both"
)

// IsValid checks if the kind is a valid ContactKind
func (k ContactKind) IsValid() bool {
	switch k {
	case ContactKindCustomer, ContactKindVendor, ContactKindBoth:
		return true
	}
	return false
}

// String returns the string representation of ContactKind
func (k ContactKind) String() string {
	return string(k)
}

// CanSell reports whether a contact of this kind may appear on a sales order
func (k ContactKind) CanSell() bool {
	return k == ContactKindCustomer || k == ContactKindBoth
}

// CanBuy reports whether a contact of this kind may appear on a purchase order
func (k ContactKind) CanBuy() bool {
	return k == ContactKindVendor || k == ContactKindBoth
}

// Address holds a contact's postal address
type Address struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Contact is a customer, vendor or both. Identity is immutable once created;
// profile fields may be updated at any time.
type Contact struct {
	shared.BaseEntity
	Name    string      `json:"name"`
	Kind    ContactKind `json:"kind"`
	Email   string      `json:"email"`
	Mobile  string      `json:"mobile"`
	Address Address     `json:"address"`
}

// NewContact creates a new contact
func NewContact(name string, kind ContactKind, email, mobile string, address Address) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Contact name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid contact kind %q", kind)
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Kind:       kind,
		Email:      email,
		Mobile:     mobile,
		Address:    address,
	}, nil
}

// UpdateProfile updates the mutable profile fields
func (c *Contact) UpdateProfile(name string, kind ContactKind, email, mobile string, address Address) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Contact name cannot be empty")
	}
	if !kind.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid contact kind %q", kind)
	}

	c.Name = name
	c.Kind = kind
	c.Email = email
	c.Mobile = mobile
	c.Address = address
	c.Touch()
	return nil
}

// Matches reports whether the contact matches a free-text search over
// name and email (case-insensitive)
func (c *Contact) Matches(search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Name), s) ||
		strings.Contains(strings.ToLower(c.Email), s)
}

// Clone returns a deep copy of the contact
func (c *Contact) Clone() *Contact {
	cp := *c
	return &cp
}
