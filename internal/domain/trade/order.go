package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/pricing"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderKind distinguishes purchase orders from sales orders. The two are
// structurally identical; only the counterparty role, the item defaults and
// the terminal status differ.
type OrderKind string

const (
	OrderKindPurchase OrderKind = "purchase"
	OrderKindSales    OrderKind = "sales"
)

// IsValid checks if the kind is a valid OrderKind
func (k OrderKind) IsValid() bool {
	return k == OrderKindPurchase || k == OrderKindSales
}

// String returns the string representation of OrderKind
func (k OrderKind) String() string {
	return string(k)
}

// TerminalStatus returns the terminal lifecycle status for this order kind
func (k OrderKind) TerminalStatus() OrderStatus {
	if k == OrderKindPurchase {
		return OrderStatusBilled
	}
	return OrderStatusInvoiced
}

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusBilled    OrderStatus = "billed"   // terminal, purchase orders
	OrderStatusInvoiced  OrderStatus = "invoiced" // terminal, sales orders
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusBilled, OrderStatusInvoiced:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the order lifecycle
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusBilled || s == OrderStatusInvoiced
}

// CanTransitionTo checks if the status can transition to the target status
// for an order of the given kind. Transitions are monotonic: draft →
// confirmed → billed/invoiced, no back-transitions, no skipping.
func (s OrderStatus) CanTransitionTo(kind OrderKind, target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == kind.TerminalStatus()
	}
	return false
}

// OrderItem is one product line within an order. Its amounts come from the
// pricing calculator and are rounded once there; the parent order's totals
// are plain sums over these already-rounded values.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func newOrderItem(orderID, productID uuid.UUID, productName string, quantity, unitPrice, taxRate decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	amounts, err := pricing.ComputeLine(quantity, unitPrice, taxRate)
	if err != nil {
		return nil, err
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
		Subtotal:    amounts.Subtotal,
		Tax:         amounts.Tax,
		LineTotal:   amounts.Total,
	}, nil
}

func (i *OrderItem) recompute(quantity, unitPrice, taxRate decimal.Decimal) error {
	amounts, err := pricing.ComputeLine(quantity, unitPrice, taxRate)
	if err != nil {
		return err
	}
	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.TaxRate = taxRate
	i.Subtotal = amounts.Subtotal
	i.Tax = amounts.Tax
	i.LineTotal = amounts.Total
	return nil
}

// Order is the purchase/sales order aggregate root. TotalAmount and TaxAmount
// are derived and recomputed as the exact sum over current items after every
// item mutation; they are never patched directly.
type Order struct {
	shared.BaseEntity
	Kind             OrderKind       `json:"kind"`
	CounterpartyID   uuid.UUID       `json:"counterparty_id"`
	CounterpartyName string          `json:"counterparty_name"`
	OrderDate        time.Time       `json:"order_date"`
	Status           OrderStatus     `json:"status"`
	Items            []OrderItem     `json:"items"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
	ClosedAt         *time.Time      `json:"closed_at,omitempty"`
}

// NewOrder creates a new draft order
func NewOrder(kind OrderKind, counterpartyID uuid.UUID, counterpartyName string, orderDate time.Time) (*Order, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid order kind %q", kind)
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Counterparty ID cannot be empty")
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order date cannot be empty")
	}

	return &Order{
		BaseEntity:       shared.NewBaseEntity(),
		Kind:             kind,
		CounterpartyID:   counterpartyID,
		CounterpartyName: counterpartyName,
		OrderDate:        orderDate,
		Status:           OrderStatusDraft,
		Items:            make([]OrderItem, 0),
		TotalAmount:      decimal.Zero,
		TaxAmount:        decimal.Zero,
	}, nil
}

// AddItem adds a new item to the order. Only allowed in draft status.
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity, unitPrice, taxRate decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.ErrOrderLocked
	}

	item, err := newOrderItem(o.ID, productID, productName, quantity, unitPrice, taxRate)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()

	return item, nil
}

// UpdateItem recomputes an existing item with new quantity, price and tax
// rate. Only allowed in draft status.
func (o *Order) UpdateItem(itemID uuid.UUID, quantity, unitPrice, taxRate decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrOrderLocked
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].recompute(quantity, unitPrice, taxRate); err != nil {
				return err
			}
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// RemoveItem removes an item from the order. Only allowed in draft status.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrOrderLocked
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// Item returns the item with the given ID, or nil
func (o *Order) Item(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotals enforces the central invariant:
// total_amount = Σ item.line_total and tax_amount = Σ item.tax.
func (o *Order) recalculateTotals() {
	total := decimal.Zero
	tax := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
		tax = tax.Add(item.Tax)
	}
	o.TotalAmount = total
	o.TaxAmount = tax
}

// TransitionTo moves the order to the target status. This is the only path
// through which an order's status changes. An order must contain at least one
// item before it may leave draft.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid order status %q", target)
	}
	if !o.Status.CanTransitionTo(o.Kind, target) {
		return shared.NewDomainErrorf(shared.CodeInvalidTransition,
			"Cannot transition %s order from %s to %s", o.Kind, o.Status, target)
	}
	if o.Status == OrderStatusDraft && len(o.Items) == 0 {
		return shared.ErrEmptyOrder
	}

	now := time.Now()
	o.Status = target
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusBilled, OrderStatusInvoiced:
		o.ClosedAt = &now
	}
	o.UpdatedAt = now

	return nil
}

// CountsTowardStock reports whether the order's quantities affect the stock
// ledger: draft orders are tentative and do not.
func (o *Order) CountsTowardStock() bool {
	return o.Status != OrderStatusDraft
}

// Clone returns a deep copy of the order
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = make([]OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.ConfirmedAt != nil {
		ts := *o.ConfirmedAt
		cp.ConfirmedAt = &ts
	}
	if o.ClosedAt != nil {
		ts := *o.ClosedAt
		cp.ClosedAt = &ts
	}
	return &cp
}
