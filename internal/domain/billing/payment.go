package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentDirection is the direction money moves: receipts come in against
// invoices, outgoing payments go out against bills.
type PaymentDirection string

const (
	PaymentDirectionReceipt  PaymentDirection = "receipt"
	PaymentDirectionOutgoing PaymentDirection = "payment"
)

// IsValid checks if the direction is a valid PaymentDirection
func (d PaymentDirection) IsValid() bool {
	return d == PaymentDirectionReceipt || d == PaymentDirectionOutgoing
}

// String returns the string representation of PaymentDirection
func (d PaymentDirection) String() string {
	return string(d)
}

// PaymentMethod is the instrument used for a payment
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBank
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment records money applied against a bill or invoice. It references the
// document and the chart-of-accounts entry it was posted to, but owns
// neither.
type Payment struct {
	shared.BaseEntity
	Direction   PaymentDirection `json:"direction"`
	DocumentID  uuid.UUID        `json:"document_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Method      PaymentMethod    `json:"method"`
	AccountID   uuid.UUID        `json:"account_id"`
	PaymentDate time.Time        `json:"payment_date"`
	Notes       string           `json:"notes,omitempty"`
}

// NewPayment creates a new payment record
func NewPayment(direction PaymentDirection, documentID uuid.UUID, amount decimal.Decimal, method PaymentMethod, accountID uuid.UUID, paymentDate time.Time, notes string) (*Payment, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment direction %q", direction)
	}
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Document ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment method %q", method)
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Account ID cannot be empty")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		Direction:   direction,
		DocumentID:  documentID,
		Amount:      amount,
		Method:      method,
		AccountID:   accountID,
		PaymentDate: paymentDate,
		Notes:       notes,
	}, nil
}

// SignedAmount returns the amount signed by direction: receipts positive,
// outgoing payments negative. Used by the default report balance source.
func (p *Payment) SignedAmount() decimal.Decimal {
	if p.Direction == PaymentDirectionReceipt {
		return p.Amount
	}
	return p.Amount.Neg()
}

// Clone returns a deep copy of the payment
func (p *Payment) Clone() *Payment {
	cp := *p
	return &cp
}
