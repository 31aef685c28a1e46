package masterdata

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
)

// AccountType classifies a chart-of-accounts entry
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// IsValid checks if the type is a valid AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome,
		AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Account is a chart-of-accounts entry. Accounts of each type form a forest:
// a parent must share the child's type and parent links must not form cycles.
type Account struct {
	shared.BaseEntity
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	ParentID *uuid.UUID  `json:"parent_id,omitempty"`
}

// NewAccount creates a new chart-of-accounts entry. Parent existence, type
// compatibility and acyclicity are enforced by the entity store, which owns
// the full account set.
func NewAccount(name string, accountType AccountType, parentID *uuid.UUID) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid account type %q", accountType)
	}

	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       accountType,
		ParentID:   parentID,
	}, nil
}

// Update updates the account's name and parent. The type is immutable:
// children share it and reports group by it.
func (a *Account) Update(name string, parentID *uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Account name cannot be empty")
	}

	a.Name = name
	a.ParentID = parentID
	a.Touch()
	return nil
}

// Matches reports whether the account matches a free-text search over its name
func (a *Account) Matches(search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name), strings.ToLower(search))
}

// Clone returns a deep copy of the account
func (a *Account) Clone() *Account {
	cp := *a
	if a.ParentID != nil {
		pid := *a.ParentID
		cp.ParentID = &pid
	}
	return &cp
}
