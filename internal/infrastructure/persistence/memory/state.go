package memory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/trade"
)

// State holds every persisted entity collection. A *State is only ever
// mutated inside Store.Update, on a private clone; once published it is
// immutable, so any reference obtained through Store.Snapshot stays
// consistent for as long as the caller holds it.
type State struct {
	Contacts  map[uuid.UUID]*masterdata.Contact
	Products  map[uuid.UUID]*masterdata.Product
	Taxes     map[uuid.UUID]*masterdata.Tax
	Accounts  map[uuid.UUID]*masterdata.Account
	Orders    map[uuid.UUID]*trade.Order
	Documents map[uuid.UUID]*billing.Document
	Payments  map[uuid.UUID]*billing.Payment
}

func newState() *State {
	return &State{
		Contacts:  make(map[uuid.UUID]*masterdata.Contact),
		Products:  make(map[uuid.UUID]*masterdata.Product),
		Taxes:     make(map[uuid.UUID]*masterdata.Tax),
		Accounts:  make(map[uuid.UUID]*masterdata.Account),
		Orders:    make(map[uuid.UUID]*trade.Order),
		Documents: make(map[uuid.UUID]*billing.Document),
		Payments:  make(map[uuid.UUID]*billing.Payment),
	}
}

func (s *State) clone() *State {
	next := &State{
		Contacts:  make(map[uuid.UUID]*masterdata.Contact, len(s.Contacts)),
		Products:  make(map[uuid.UUID]*masterdata.Product, len(s.Products)),
		Taxes:     make(map[uuid.UUID]*masterdata.Tax, len(s.Taxes)),
		Accounts:  make(map[uuid.UUID]*masterdata.Account, len(s.Accounts)),
		Orders:    make(map[uuid.UUID]*trade.Order, len(s.Orders)),
		Documents: make(map[uuid.UUID]*billing.Document, len(s.Documents)),
		Payments:  make(map[uuid.UUID]*billing.Payment, len(s.Payments)),
	}
	for id, c := range s.Contacts {
		next.Contacts[id] = c.Clone()
	}
	for id, p := range s.Products {
		next.Products[id] = p.Clone()
	}
	for id, t := range s.Taxes {
		next.Taxes[id] = t.Clone()
	}
	for id, a := range s.Accounts {
		next.Accounts[id] = a.Clone()
	}
	for id, o := range s.Orders {
		next.Orders[id] = o.Clone()
	}
	for id, d := range s.Documents {
		next.Documents[id] = d.Clone()
	}
	for id, p := range s.Payments {
		next.Payments[id] = p.Clone()
	}
	return next
}

// ContactInUse reports whether any order references the contact
func (s *State) ContactInUse(id uuid.UUID) bool {
	for _, o := range s.Orders {
		if o.CounterpartyID == id {
			return true
		}
	}
	for _, d := range s.Documents {
		if d.CounterpartyID == id {
			return true
		}
	}
	return false
}

// ProductInUse reports whether any order item references the product
func (s *State) ProductInUse(id uuid.UUID) bool {
	for _, o := range s.Orders {
		for _, item := range o.Items {
			if item.ProductID == id {
				return true
			}
		}
	}
	return false
}

// AccountInUse reports whether any payment or child account references the account
func (s *State) AccountInUse(id uuid.UUID) bool {
	for _, p := range s.Payments {
		if p.AccountID == id {
			return true
		}
	}
	for _, a := range s.Accounts {
		if a.ParentID != nil && *a.ParentID == id {
			return true
		}
	}
	return false
}

// OrderInUse reports whether a bill/invoice references the order
func (s *State) OrderInUse(id uuid.UUID) bool {
	for _, d := range s.Documents {
		if d.OrderID == id {
			return true
		}
	}
	return false
}

// DocumentInUse reports whether any payment references the document
func (s *State) DocumentInUse(id uuid.UUID) bool {
	for _, p := range s.Payments {
		if p.DocumentID == id {
			return true
		}
	}
	return false
}

// PaymentsByDocument returns the payments applied to a document, ordered by
// payment date then creation time
func (s *State) PaymentsByDocument(documentID uuid.UUID) []*billing.Payment {
	out := make([]*billing.Payment, 0)
	for _, p := range s.Payments {
		if p.DocumentID == documentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// DocumentByOrder returns the bill/invoice created from an order, if any
func (s *State) DocumentByOrder(orderID uuid.UUID) *billing.Document {
	for _, d := range s.Documents {
		if d.OrderID == orderID {
			return d
		}
	}
	return nil
}

// AccountLinkWouldCycle reports whether pointing accountID at parentID would
// close a cycle in the account forest
func (s *State) AccountLinkWouldCycle(accountID, parentID uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool)
	current := parentID
	for {
		if current == accountID {
			return true
		}
		if seen[current] {
			return true // pre-existing cycle upstream, refuse to extend it
		}
		seen[current] = true
		parent, ok := s.Accounts[current]
		if !ok || parent.ParentID == nil {
			return false
		}
		current = *parent.ParentID
	}
}

// ContactList returns contacts ordered by creation time then ID
func (s *State) ContactList() []*masterdata.Contact {
	out := make([]*masterdata.Contact, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		out = append(out, c)
	}
	sortByCreation(out, func(c *masterdata.Contact) sortKey { return key(c.CreatedAt.UnixNano(), c.ID) })
	return out
}

// ProductList returns products ordered by creation time then ID
func (s *State) ProductList() []*masterdata.Product {
	out := make([]*masterdata.Product, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, p)
	}
	sortByCreation(out, func(p *masterdata.Product) sortKey { return key(p.CreatedAt.UnixNano(), p.ID) })
	return out
}

// TaxList returns taxes ordered by creation time then ID
func (s *State) TaxList() []*masterdata.Tax {
	out := make([]*masterdata.Tax, 0, len(s.Taxes))
	for _, t := range s.Taxes {
		out = append(out, t)
	}
	sortByCreation(out, func(t *masterdata.Tax) sortKey { return key(t.CreatedAt.UnixNano(), t.ID) })
	return out
}

// AccountList returns accounts ordered by creation time then ID
func (s *State) AccountList() []*masterdata.Account {
	out := make([]*masterdata.Account, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		out = append(out, a)
	}
	sortByCreation(out, func(a *masterdata.Account) sortKey { return key(a.CreatedAt.UnixNano(), a.ID) })
	return out
}

// OrderList returns orders ordered by creation time then ID
func (s *State) OrderList() []*trade.Order {
	out := make([]*trade.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		out = append(out, o)
	}
	sortByCreation(out, func(o *trade.Order) sortKey { return key(o.CreatedAt.UnixNano(), o.ID) })
	return out
}

// DocumentList returns documents ordered by creation time then ID
func (s *State) DocumentList() []*billing.Document {
	out := make([]*billing.Document, 0, len(s.Documents))
	for _, d := range s.Documents {
		out = append(out, d)
	}
	sortByCreation(out, func(d *billing.Document) sortKey { return key(d.CreatedAt.UnixNano(), d.ID) })
	return out
}

// PaymentList returns payments ordered by creation time then ID
func (s *State) PaymentList() []*billing.Payment {
	out := make([]*billing.Payment, 0, len(s.Payments))
	for _, p := range s.Payments {
		out = append(out, p)
	}
	sortByCreation(out, func(p *billing.Payment) sortKey { return key(p.CreatedAt.UnixNano(), p.ID) })
	return out
}

type sortKey struct {
	nanos int64
	id    string
}

func key(nanos int64, id uuid.UUID) sortKey {
	return sortKey{nanos: nanos, id: id.String()}
}

func sortByCreation[T any](items []T, keyOf func(T) sortKey) {
	sort.Slice(items, func(i, j int) bool {
		a, b := keyOf(items[i]), keyOf(items[j])
		if a.nanos != b.nanos {
			return a.nanos < b.nanos
		}
		return a.id < b.id
	})
}
