// Package masterdata implements the CRUD services over the four master
// entities: contacts, products, taxes and chart-of-accounts entries. Writes
// run through the entity store so referential checks and the mutation commit
// as one step.
package masterdata

import (
	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service exposes master data operations
type Service struct {
	store  *memory.Store
	logger *zap.Logger
}

// NewService creates the master data service
func NewService(store *memory.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ContactInput carries the writable fields of a contact
type ContactInput struct {
	Name    string
	Kind    masterdata.ContactKind
	Email   string
	Mobile  string
	Address masterdata.Address
}

// CreateContact registers a new contact
func (s *Service) CreateContact(input ContactInput) (*masterdata.Contact, error) {
	contact, err := masterdata.NewContact(input.Name, input.Kind, input.Email, input.Mobile, input.Address)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(func(state *memory.State) error {
		state.Contacts[contact.ID] = contact
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contact created", zap.String("contact_id", contact.ID.String()), zap.String("kind", contact.Kind.String()))
	return contact.Clone(), nil
}

// GetContact returns a contact by ID
func (s *Service) GetContact(id uuid.UUID) (*masterdata.Contact, error) {
	contact, ok := s.store.Snapshot().State.Contacts[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Contact %s not found", id)
	}
	return contact.Clone(), nil
}

// UpdateContact rewrites a contact's profile fields
func (s *Service) UpdateContact(id uuid.UUID, input ContactInput) (*masterdata.Contact, error) {
	var updated *masterdata.Contact
	err := s.store.Update(func(state *memory.State) error {
		contact, ok := state.Contacts[id]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Contact %s not found", id)
		}
		if err := contact.UpdateProfile(input.Name, input.Kind, input.Email, input.Mobile, input.Address); err != nil {
			return err
		}
		updated = contact.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteContact removes a contact unless an order or document references it
func (s *Service) DeleteContact(id uuid.UUID) error {
	return s.store.Update(func(state *memory.State) error {
		if _, ok := state.Contacts[id]; !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Contact %s not found", id)
		}
		if state.ContactInUse(id) {
			return shared.NewDomainError(shared.CodeEntityInUse, "Contact is referenced by existing transactions")
		}
		delete(state.Contacts, id)
		return nil
	})
}

// ListContacts returns contacts matching an optional free-text search
func (s *Service) ListContacts(search string) []*masterdata.Contact {
	out := make([]*masterdata.Contact, 0)
	for _, c := range s.store.Snapshot().State.ContactList() {
		if c.Matches(search) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// ProductInput carries the writable fields of a product
type ProductInput struct {
	Name            string
	Kind            masterdata.ProductKind
	SalesPrice      decimal.Decimal
	PurchasePrice   decimal.Decimal
	SaleTaxRate     decimal.Decimal
	PurchaseTaxRate decimal.Decimal
	HSNCode         string
	Category        string
}

// CreateProduct registers a new product
func (s *Service) CreateProduct(input ProductInput) (*masterdata.Product, error) {
	product, err := masterdata.NewProduct(input.Name, input.Kind,
		input.SalesPrice, input.PurchasePrice,
		input.SaleTaxRate, input.PurchaseTaxRate,
		input.HSNCode, input.Category)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(func(state *memory.State) error {
		state.Products[product.ID] = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID.String()), zap.String("kind", product.Kind.String()))
	return product.Clone(), nil
}

// GetProduct returns a product by ID
func (s *Service) GetProduct(id uuid.UUID) (*masterdata.Product, error) {
	product, ok := s.store.Snapshot().State.Products[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", id)
	}
	return product.Clone(), nil
}

// UpdateProduct rewrites a product's fields. Confirmed orders keep the prices
// frozen on their lines, so edits here never rewrite history.
func (s *Service) UpdateProduct(id uuid.UUID, input ProductInput) (*masterdata.Product, error) {
	var updated *masterdata.Product
	err := s.store.Update(func(state *memory.State) error {
		product, ok := state.Products[id]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", id)
		}
		if err := product.Update(input.Name, input.Kind,
			input.SalesPrice, input.PurchasePrice,
			input.SaleTaxRate, input.PurchaseTaxRate,
			input.HSNCode, input.Category); err != nil {
			return err
		}
		updated = product.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product unless an order line references it
func (s *Service) DeleteProduct(id uuid.UUID) error {
	return s.store.Update(func(state *memory.State) error {
		if _, ok := state.Products[id]; !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", id)
		}
		if state.ProductInUse(id) {
			return shared.NewDomainError(shared.CodeEntityInUse, "Product is referenced by existing order lines")
		}
		delete(state.Products, id)
		return nil
	})
}

// ListProducts returns products matching an optional free-text search
func (s *Service) ListProducts(search string) []*masterdata.Product {
	out := make([]*masterdata.Product, 0)
	for _, p := range s.store.Snapshot().State.ProductList() {
		if p.Matches(search) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// TaxInput carries the writable fields of a tax definition
type TaxInput struct {
	Name      string
	Method    masterdata.TaxMethod
	Rate      decimal.Decimal
	AppliesTo masterdata.TaxScope
}

// CreateTax registers a new tax definition
func (s *Service) CreateTax(input TaxInput) (*masterdata.Tax, error) {
	tax, err := masterdata.NewTax(input.Name, input.Method, input.Rate, input.AppliesTo)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(func(state *memory.State) error {
		state.Taxes[tax.ID] = tax
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tax.Clone(), nil
}

// GetTax returns a tax definition by ID
func (s *Service) GetTax(id uuid.UUID) (*masterdata.Tax, error) {
	tax, ok := s.store.Snapshot().State.Taxes[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Tax %s not found", id)
	}
	return tax.Clone(), nil
}

// UpdateTax rewrites a tax definition
func (s *Service) UpdateTax(id uuid.UUID, input TaxInput) (*masterdata.Tax, error) {
	var updated *masterdata.Tax
	err := s.store.Update(func(state *memory.State) error {
		tax, ok := state.Taxes[id]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Tax %s not found", id)
		}
		if err := tax.Update(input.Name, input.Method, input.Rate, input.AppliesTo); err != nil {
			return err
		}
		updated = tax.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTax removes a tax definition. Taxes are informational, nothing else
// references them, so deletion is always allowed.
func (s *Service) DeleteTax(id uuid.UUID) error {
	return s.store.Update(func(state *memory.State) error {
		if _, ok := state.Taxes[id]; !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Tax %s not found", id)
		}
		delete(state.Taxes, id)
		return nil
	})
}

// ListTaxes returns tax definitions matching an optional free-text search
func (s *Service) ListTaxes(search string) []*masterdata.Tax {
	out := make([]*masterdata.Tax, 0)
	for _, t := range s.store.Snapshot().State.TaxList() {
		if t.Matches(search) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// AccountInput carries the writable fields of a chart-of-accounts entry
type AccountInput struct {
	Name     string
	Type     masterdata.AccountType
	ParentID *uuid.UUID
}

func checkAccountParent(state *memory.State, accountID uuid.UUID, accountType masterdata.AccountType, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	parent, ok := state.Accounts[*parentID]
	if !ok {
		return shared.NewDomainErrorf(shared.CodeReferentialIntegrity, "Parent account %s not found", *parentID)
	}
	if parent.Type != accountType {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Parent account must share type %q", accountType)
	}
	if accountID != uuid.Nil && state.AccountLinkWouldCycle(accountID, *parentID) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Account parent link would form a cycle")
	}
	return nil
}

// CreateAccount registers a new chart-of-accounts entry
func (s *Service) CreateAccount(input AccountInput) (*masterdata.Account, error) {
	account, err := masterdata.NewAccount(input.Name, input.Type, input.ParentID)
	if err != nil {
		return nil, err
	}

	err = s.store.Update(func(state *memory.State) error {
		if err := checkAccountParent(state, account.ID, account.Type, input.ParentID); err != nil {
			return err
		}
		state.Accounts[account.ID] = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.String("account_id", account.ID.String()), zap.String("type", account.Type.String()))
	return account.Clone(), nil
}

// GetAccount returns a chart-of-accounts entry by ID
func (s *Service) GetAccount(id uuid.UUID) (*masterdata.Account, error) {
	account, ok := s.store.Snapshot().State.Accounts[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Account %s not found", id)
	}
	return account.Clone(), nil
}

// UpdateAccount renames or re-parents an account. The type is immutable.
func (s *Service) UpdateAccount(id uuid.UUID, name string, parentID *uuid.UUID) (*masterdata.Account, error) {
	var updated *masterdata.Account
	err := s.store.Update(func(state *memory.State) error {
		account, ok := state.Accounts[id]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Account %s not found", id)
		}
		if err := checkAccountParent(state, id, account.Type, parentID); err != nil {
			return err
		}
		if err := account.Update(name, parentID); err != nil {
			return err
		}
		updated = account.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes an account unless a payment or a child account
// references it
func (s *Service) DeleteAccount(id uuid.UUID) error {
	return s.store.Update(func(state *memory.State) error {
		if _, ok := state.Accounts[id]; !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Account %s not found", id)
		}
		if state.AccountInUse(id) {
			return shared.NewDomainError(shared.CodeEntityInUse, "Account is referenced by payments or child accounts")
		}
		delete(state.Accounts, id)
		return nil
	})
}

// ListAccounts returns chart-of-accounts entries matching an optional search
func (s *Service) ListAccounts(search string) []*masterdata.Account {
	out := make([]*masterdata.Account, 0)
	for _, a := range s.store.Snapshot().State.AccountList() {
		if a.Matches(search) {
			out = append(out, a.Clone())
		}
	}
	return out
}
