package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/shared/valueobject"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// DefaultPaymentTerm is the span between a document's issue and due dates
const DefaultPaymentTerm = 30 * 24 * time.Hour

// DocumentKind distinguishes vendor bills from customer invoices
type DocumentKind string

const (
	DocumentKindBill    DocumentKind = "bill"    // payable, from a purchase order
	DocumentKindInvoice DocumentKind = "invoice" // receivable, from a sales order
)

// IsValid checks if the kind is a valid DocumentKind
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindBill || k == DocumentKindInvoice
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// DocumentStatus represents the settlement status of a bill or invoice
type DocumentStatus string

const (
	DocumentStatusUnpaid  DocumentStatus = "unpaid"
	DocumentStatusPartial DocumentStatus = "partial"
	DocumentStatusPaid    DocumentStatus = "paid"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusUnpaid, DocumentStatusPartial, DocumentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// Document is a vendor bill or customer invoice. It references, but does not
// own, its originating order; its total is copied from the order at creation
// and never changes. PaidAmount and Status are derived from the payment set
// by the settlement engine.
type Document struct {
	shared.BaseEntity
	Kind           DocumentKind    `json:"kind"`
	OrderID        uuid.UUID       `json:"order_id"`
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        time.Time       `json:"due_date"`
	Status         DocumentStatus  `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
}

// NewDocumentFromOrder creates the bill/invoice for an order reaching its
// terminal status. The caller (order engine) performs this inside the same
// mutation scope as the transition itself.
func NewDocumentFromOrder(order *trade.Order, issueDate time.Time) (*Document, error) {
	var kind DocumentKind
	switch order.Kind {
	case trade.OrderKindPurchase:
		kind = DocumentKindBill
	case trade.OrderKindSales:
		kind = DocumentKindInvoice
	default:
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid order kind %q", order.Kind)
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Document{
		BaseEntity:     shared.NewBaseEntity(),
		Kind:           kind,
		OrderID:        order.ID,
		CounterpartyID: order.CounterpartyID,
		IssueDate:      issueDate,
		DueDate:        issueDate.Add(DefaultPaymentTerm),
		Status:         DocumentStatusUnpaid,
		TotalAmount:    order.TotalAmount,
		PaidAmount:     decimal.Zero,
	}, nil
}

// Settle sets the derived paid amount and re-derives the settlement status:
// unpaid when nothing is applied, paid when the total is covered, partial
// otherwise. The paid amount may never exceed the document total.
func (d *Document) Settle(paidAmount decimal.Decimal) error {
	paid := valueobject.NewMoney(paidAmount)
	total := valueobject.NewMoney(d.TotalAmount)
	if paid.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Paid amount cannot be negative")
	}
	if paid.GreaterThan(total) {
		return shared.ErrOverpayment
	}

	d.PaidAmount = paidAmount
	switch {
	case paid.IsZero():
		d.Status = DocumentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		d.Status = DocumentStatusPaid
	default:
		d.Status = DocumentStatusPartial
	}
	d.Touch()
	return nil
}

// Outstanding returns the unpaid remainder of the document
func (d *Document) Outstanding() decimal.Decimal {
	total := valueobject.NewMoney(d.TotalAmount)
	return total.Subtract(valueobject.NewMoney(d.PaidAmount)).Amount()
}

// AcceptsDirection reports whether a payment of the given direction can be
// applied to this document: receipts settle invoices, payments settle bills.
func (d *Document) AcceptsDirection(direction PaymentDirection) bool {
	if d.Kind == DocumentKindInvoice {
		return direction == PaymentDirectionReceipt
	}
	return direction == PaymentDirectionOutgoing
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	cp := *d
	return &cp
}
