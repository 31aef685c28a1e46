package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billedPurchaseOrder(t *testing.T) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(trade.OrderKindPurchase, uuid.New(), "Azure Interiors", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Office Chair", decimal.NewFromInt(2), decimal.NewFromInt(6500), decimal.NewFromInt(18))
	require.NoError(t, err)
	require.NoError(t, order.TransitionTo(trade.OrderStatusConfirmed))
	require.NoError(t, order.TransitionTo(trade.OrderStatusBilled))
	return order
}

func TestNewDocumentFromOrder(t *testing.T) {
	order := billedPurchaseOrder(t)
	issue := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

	doc, err := NewDocumentFromOrder(order, issue)
	require.NoError(t, err)
	assert.Equal(t, DocumentKindBill, doc.Kind)
	assert.Equal(t, order.ID, doc.OrderID)
	assert.Equal(t, order.CounterpartyID, doc.CounterpartyID)
	assert.Equal(t, DocumentStatusUnpaid, doc.Status)
	assert.Equal(t, "15340.00", doc.TotalAmount.StringFixed(2))
	assert.True(t, doc.PaidAmount.IsZero())
	assert.Equal(t, issue.Add(DefaultPaymentTerm), doc.DueDate)
}

func TestDocument_SettleDerivesStatus(t *testing.T) {
	doc, err := NewDocumentFromOrder(billedPurchaseOrder(t), time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		paid   string
		status DocumentStatus
	}{
		{"nothing applied", "0", DocumentStatusUnpaid},
		{"partially paid", "5000", DocumentStatusPartial},
		{"exactly paid", "15340", DocumentStatusPaid},
		{"back to partial after delete", "340", DocumentStatusPartial},
		{"back to unpaid after delete", "0", DocumentStatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, doc.Settle(decimal.RequireFromString(tt.paid)))
			assert.Equal(t, tt.status, doc.Status)
		})
	}
}

func TestDocument_SettleRejectsOverpayment(t *testing.T) {
	doc, err := NewDocumentFromOrder(billedPurchaseOrder(t), time.Now())
	require.NoError(t, err)

	err = doc.Settle(decimal.RequireFromString("15340.01"))
	assert.True(t, shared.IsCode(err, shared.CodeOverpayment))
	assert.Equal(t, DocumentStatusUnpaid, doc.Status, "failed settle leaves document unchanged")
	assert.True(t, doc.PaidAmount.IsZero())
}

func TestDocument_Outstanding(t *testing.T) {
	doc, err := NewDocumentFromOrder(billedPurchaseOrder(t), time.Now())
	require.NoError(t, err)

	require.NoError(t, doc.Settle(decimal.NewFromInt(5340)))
	assert.Equal(t, "10000.00", doc.Outstanding().StringFixed(2))
}

func TestDocument_AcceptsDirection(t *testing.T) {
	bill, err := NewDocumentFromOrder(billedPurchaseOrder(t), time.Now())
	require.NoError(t, err)
	assert.True(t, bill.AcceptsDirection(PaymentDirectionOutgoing))
	assert.False(t, bill.AcceptsDirection(PaymentDirectionReceipt))

	salesOrder, err := trade.NewOrder(trade.OrderKindSales, uuid.New(), "Nimesh Pathak", time.Now())
	require.NoError(t, err)
	_, err = salesOrder.AddItem(uuid.New(), "Dining Table", decimal.NewFromInt(2), decimal.NewFromInt(8500), decimal.NewFromInt(18))
	require.NoError(t, err)
	require.NoError(t, salesOrder.TransitionTo(trade.OrderStatusConfirmed))
	require.NoError(t, salesOrder.TransitionTo(trade.OrderStatusInvoiced))

	invoice, err := NewDocumentFromOrder(salesOrder, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DocumentKindInvoice, invoice.Kind)
	assert.Equal(t, "20060.00", invoice.TotalAmount.StringFixed(2))
	assert.True(t, invoice.AcceptsDirection(PaymentDirectionReceipt))
	assert.False(t, invoice.AcceptsDirection(PaymentDirectionOutgoing))
}

func TestNewPayment_Validation(t *testing.T) {
	docID, accountID := uuid.New(), uuid.New()

	p, err := NewPayment(PaymentDirectionReceipt, docID, decimal.NewFromInt(100), PaymentMethodBank, accountID, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, "100", p.SignedAmount().String())

	out, err := NewPayment(PaymentDirectionOutgoing, docID, decimal.NewFromInt(100), PaymentMethodCash, accountID, time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, "-100", out.SignedAmount().String())

	tests := []struct {
		name string
		fn   func() error
	}{
		{"bad direction", func() error {
			_, err := NewPayment(PaymentDirection("transfer"), docID, decimal.NewFromInt(1), PaymentMethodCash, accountID, time.Now(), "")
			return err
		}},
		{"nil document", func() error {
			_, err := NewPayment(PaymentDirectionReceipt, uuid.Nil, decimal.NewFromInt(1), PaymentMethodCash, accountID, time.Now(), "")
			return err
		}},
		{"zero amount", func() error {
			_, err := NewPayment(PaymentDirectionReceipt, docID, decimal.Zero, PaymentMethodCash, accountID, time.Now(), "")
			return err
		}},
		{"negative amount", func() error {
			_, err := NewPayment(PaymentDirectionReceipt, docID, decimal.NewFromInt(-5), PaymentMethodCash, accountID, time.Now(), "")
			return err
		}},
		{"bad method", func() error {
			_, err := NewPayment(PaymentDirectionReceipt, docID, decimal.NewFromInt(1), PaymentMethod("upi"), accountID, time.Now(), "")
			return err
		}},
		{"nil account", func() error {
			_, err := NewPayment(PaymentDirectionReceipt, docID, decimal.NewFromInt(1), PaymentMethodCash, uuid.Nil, time.Now(), "")
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, shared.IsCode(tt.fn(), shared.CodeInvalidInput))
		})
	}
}
