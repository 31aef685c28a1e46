// Package trade implements the order engine: order creation against master
// data, draft line editing with product defaults, and the lifecycle
// transition that spawns the bill or invoice.
package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService exposes order engine operations
type OrderService struct {
	store  *memory.Store
	logger *zap.Logger
}

// NewOrderService creates the order service
func NewOrderService(store *memory.Store, logger *zap.Logger) *OrderService {
	return &OrderService{store: store, logger: logger}
}

// CreateOrderInput carries the fields needed to open a draft order
type CreateOrderInput struct {
	Kind           trade.OrderKind
	CounterpartyID uuid.UUID
	OrderDate      time.Time
}

// ItemInput carries an order line. UnitPrice and TaxRate are optional: when
// nil they default from the product's side-specific price and rate.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	TaxRate   *decimal.Decimal
}

func counterpartyFits(kind trade.OrderKind, contact *masterdata.Contact) bool {
	if kind == trade.OrderKindPurchase {
		return contact.Kind.CanBuy()
	}
	return contact.Kind.CanSell()
}

// CreateOrder opens a draft order against an existing counterparty. Purchase
// orders require a vendor-capable contact, sales orders a customer-capable
// one.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*trade.Order, error) {
	var created *trade.Order
	err := s.store.Update(func(state *memory.State) error {
		contact, ok := state.Contacts[input.CounterpartyID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeReferentialIntegrity, "Counterparty %s not found", input.CounterpartyID)
		}
		if !counterpartyFits(input.Kind, contact) {
			return shared.NewDomainErrorf(shared.CodeInvalidInput,
				"Contact kind %q cannot be the counterparty of a %s order", contact.Kind, input.Kind)
		}

		order, err := trade.NewOrder(input.Kind, contact.ID, contact.Name, input.OrderDate)
		if err != nil {
			return err
		}
		state.Orders[order.ID] = order
		created = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", created.ID.String()),
		zap.String("kind", created.Kind.String()))
	return created, nil
}

// resolveItem fills price and rate defaults from the product for the order's
// side and enforces that goods are traded in whole units.
func resolveItem(order *trade.Order, product *masterdata.Product, input ItemInput) (unitPrice, taxRate decimal.Decimal, err error) {
	if product.IsGoods() && !input.Quantity.IsInteger() {
		return decimal.Zero, decimal.Zero, shared.NewDomainError(shared.CodeInvalidInput,
			"Goods quantity must be a whole number")
	}

	if order.Kind == trade.OrderKindPurchase {
		unitPrice, taxRate = product.PurchasePrice, product.PurchaseTaxRate
	} else {
		unitPrice, taxRate = product.SalesPrice, product.SaleTaxRate
	}
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	return unitPrice, taxRate, nil
}

// AddItem appends a line to a draft order
func (s *OrderService) AddItem(orderID uuid.UUID, input ItemInput) (*trade.Order, error) {
	var updated *trade.Order
	err := s.store.Update(func(state *memory.State) error {
		order, ok := state.Orders[orderID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Order %s not found", orderID)
		}
		product, ok := state.Products[input.ProductID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeReferentialIntegrity, "Product %s not found", input.ProductID)
		}

		unitPrice, taxRate, err := resolveItem(order, product, input)
		if err != nil {
			return err
		}
		if _, err := order.AddItem(product.ID, product.Name, input.Quantity, unitPrice, taxRate); err != nil {
			return err
		}
		updated = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateItem recomputes an existing line on a draft order. Price and rate
// default from the product again unless explicitly overridden.
func (s *OrderService) UpdateItem(orderID, itemID uuid.UUID, input ItemInput) (*trade.Order, error) {
	var updated *trade.Order
	err := s.store.Update(func(state *memory.State) error {
		order, ok := state.Orders[orderID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Order %s not found", orderID)
		}
		item := order.Item(itemID)
		if item == nil {
			return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
		}
		product, ok := state.Products[item.ProductID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeReferentialIntegrity, "Product %s not found", item.ProductID)
		}

		unitPrice, taxRate, err := resolveItem(order, product, input)
		if err != nil {
			return err
		}
		if err := order.UpdateItem(itemID, input.Quantity, unitPrice, taxRate); err != nil {
			return err
		}
		updated = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveItem drops a line from a draft order
func (s *OrderService) RemoveItem(orderID, itemID uuid.UUID) (*trade.Order, error) {
	var updated *trade.Order
	err := s.store.Update(func(state *memory.State) error {
		order, ok := state.Orders[orderID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Order %s not found", orderID)
		}
		if err := order.RemoveItem(itemID); err != nil {
			return err
		}
		updated = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Transition advances an order along its lifecycle. Reaching the terminal
// status creates the bill or invoice in the same atomic update: either both
// the status change and the document land, or neither does.
func (s *OrderService) Transition(orderID uuid.UUID, target trade.OrderStatus) (*trade.Order, *billing.Document, error) {
	var (
		updated *trade.Order
		created *billing.Document
	)
	err := s.store.Update(func(state *memory.State) error {
		order, ok := state.Orders[orderID]
		if !ok {
			return shared.NewDomainErrorf(shared.CodeNotFound, "Order %s not found", orderID)
		}
		if err := order.TransitionTo(target); err != nil {
			return err
		}

		if target.IsTerminal() {
			doc, err := billing.NewDocumentFromOrder(order, time.Now())
			if err != nil {
				return err
			}
			state.Documents[doc.ID] = doc
			created = doc.Clone()
		}

		updated = order.Clone()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	fields := []zap.Field{
		zap.String("order_id", updated.ID.String()),
		zap.String("status", updated.Status.String()),
	}
	if created != nil {
		fields = append(fields, zap.String("document_id", created.ID.String()), zap.String("document_kind", created.Kind.String()))
	}
	s.logger.Info("order transitioned", fields...)

	return updated, created, nil
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(id uuid.UUID) (*trade.Order, error) {
	order, ok := s.store.Snapshot().State.Orders[id]
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Order %s not found", id)
	}
	return order.Clone(), nil
}

// ListOrders returns orders, optionally filtered by kind and status
func (s *OrderService) ListOrders(kind trade.OrderKind, status trade.OrderStatus) []*trade.Order {
	out := make([]*trade.Order, 0)
	for _, o := range s.store.Snapshot().State.OrderList() {
		if kind != "" && o.Kind != kind {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}
