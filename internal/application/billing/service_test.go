package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	appmasterdata "github.com/shivaccounts/backend/internal/application/masterdata"
	apptrade "github.com/shivaccounts/backend/internal/application/trade"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store    *memory.Store
	payments *PaymentService
	bank     *masterdata.Account
	bill     *billing.Document
	invoice  *billing.Document
}

// newFixture drives a purchase and a sales order to their terminal statuses
// so both a bill (15340.00) and an invoice (20060.00) exist.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	md := appmasterdata.NewService(store, logger)
	orders := apptrade.NewOrderService(store, logger)

	vendor, err := md.CreateContact(appmasterdata.ContactInput{Name: "Azure Furniture", Kind: masterdata.ContactKindVendor})
	require.NoError(t, err)
	customer, err := md.CreateContact(appmasterdata.ContactInput{Name: "Nimesh Pathak", Kind: masterdata.ContactKindCustomer})
	require.NoError(t, err)
	chair, err := md.CreateProduct(appmasterdata.ProductInput{
		Name:            "Office Chair",
		Kind:            masterdata.ProductKindGoods,
		SalesPrice:      decimal.NewFromInt(8500),
		PurchasePrice:   decimal.NewFromInt(6500),
		SaleTaxRate:     decimal.NewFromInt(18),
		PurchaseTaxRate: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	bank, err := md.CreateAccount(appmasterdata.AccountInput{Name: "Bank", Type: masterdata.AccountTypeAsset})
	require.NoError(t, err)

	runOrder := func(kind trade.OrderKind, counterpartyID uuid.UUID) *billing.Document {
		order, err := orders.CreateOrder(apptrade.CreateOrderInput{Kind: kind, CounterpartyID: counterpartyID, OrderDate: time.Now()})
		require.NoError(t, err)
		_, err = orders.AddItem(order.ID, apptrade.ItemInput{ProductID: chair.ID, Quantity: decimal.NewFromInt(2)})
		require.NoError(t, err)
		_, _, err = orders.Transition(order.ID, trade.OrderStatusConfirmed)
		require.NoError(t, err)
		_, doc, err := orders.Transition(order.ID, kind.TerminalStatus())
		require.NoError(t, err)
		require.NotNil(t, doc)
		return doc
	}

	return &fixture{
		store:    store,
		payments: NewPaymentService(store, logger),
		bank:     bank,
		bill:     runOrder(trade.OrderKindPurchase, vendor.ID),
		invoice:  runOrder(trade.OrderKindSales, customer.ID),
	}
}

func (f *fixture) billPayment(amount int64) PaymentInput {
	return PaymentInput{
		Direction:   billing.PaymentDirectionOutgoing,
		DocumentID:  f.bill.ID,
		Amount:      decimal.NewFromInt(amount),
		Method:      billing.PaymentMethodBank,
		AccountID:   f.bank.ID,
		PaymentDate: time.Now(),
	}
}

func TestPaymentService_RecordPayment_SettlesDocument(t *testing.T) {
	f := newFixture(t)

	payment, doc, err := f.payments.RecordPayment(f.billPayment(5000))
	require.NoError(t, err)
	assert.Equal(t, "5000", payment.Amount.String())
	assert.Equal(t, billing.DocumentStatusPartial, doc.Status)
	assert.Equal(t, "5000", doc.PaidAmount.String())
	assert.Equal(t, "10340.00", doc.Outstanding().StringFixed(2))

	_, doc, err = f.payments.RecordPayment(f.billPayment(10340))
	require.NoError(t, err)
	assert.Equal(t, billing.DocumentStatusPaid, doc.Status)
	assert.True(t, doc.Outstanding().IsZero())
}

func TestPaymentService_Overpayment_RejectedAtomically(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.payments.RecordPayment(f.billPayment(10000))
	require.NoError(t, err)

	_, _, err = f.payments.RecordPayment(f.billPayment(6000))
	assert.True(t, shared.IsCode(err, shared.CodeOverpayment))

	// the rejected payment must not exist and the document must be unchanged
	state := f.store.Snapshot().State
	assert.Len(t, state.PaymentsByDocument(f.bill.ID), 1)
	assert.Equal(t, "10000", state.Documents[f.bill.ID].PaidAmount.String())
	assert.Equal(t, billing.DocumentStatusPartial, state.Documents[f.bill.ID].Status)
}

func TestPaymentService_DirectionMustMatchDocument(t *testing.T) {
	f := newFixture(t)

	// receipt against a bill
	input := f.billPayment(1000)
	input.Direction = billing.PaymentDirectionReceipt
	_, _, err := f.payments.RecordPayment(input)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	// outgoing payment against an invoice
	input = f.billPayment(1000)
	input.DocumentID = f.invoice.ID
	_, _, err = f.payments.RecordPayment(input)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	// receipt against the invoice is fine
	input.Direction = billing.PaymentDirectionReceipt
	_, doc, err := f.payments.RecordPayment(input)
	require.NoError(t, err)
	assert.Equal(t, billing.DocumentStatusPartial, doc.Status)
}

func TestPaymentService_UnknownRefs(t *testing.T) {
	f := newFixture(t)

	input := f.billPayment(1000)
	input.DocumentID = uuid.New()
	_, _, err := f.payments.RecordPayment(input)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	input = f.billPayment(1000)
	input.AccountID = uuid.New()
	_, _, err = f.payments.RecordPayment(input)
	assert.True(t, shared.IsCode(err, shared.CodeReferentialIntegrity))
}

func TestPaymentService_DeletePayment_RederivesStatus(t *testing.T) {
	f := newFixture(t)

	payment, doc, err := f.payments.RecordPayment(f.billPayment(15340))
	require.NoError(t, err)
	assert.Equal(t, billing.DocumentStatusPaid, doc.Status)

	doc, err = f.payments.DeletePayment(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.DocumentStatusUnpaid, doc.Status)
	assert.True(t, doc.PaidAmount.IsZero())

	_, err = f.payments.GetPayment(payment.ID)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

func TestPaymentService_ListPayments_ByDocument(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.payments.RecordPayment(f.billPayment(1000))
	require.NoError(t, err)
	_, _, err = f.payments.RecordPayment(f.billPayment(2000))
	require.NoError(t, err)

	invoiceInput := f.billPayment(500)
	invoiceInput.DocumentID = f.invoice.ID
	invoiceInput.Direction = billing.PaymentDirectionReceipt
	_, _, err = f.payments.RecordPayment(invoiceInput)
	require.NoError(t, err)

	assert.Len(t, f.payments.ListPayments(uuid.Nil), 3)
	assert.Len(t, f.payments.ListPayments(f.bill.ID), 2)
	assert.Len(t, f.payments.ListPayments(f.invoice.ID), 1)
}

func TestPaymentService_ListDocuments_Filters(t *testing.T) {
	f := newFixture(t)

	all := f.payments.ListDocuments("", "")
	assert.Len(t, all, 2)

	bills := f.payments.ListDocuments(billing.DocumentKindBill, "")
	require.Len(t, bills, 1)
	assert.Equal(t, f.bill.ID, bills[0].ID)

	unpaid := f.payments.ListDocuments("", billing.DocumentStatusUnpaid)
	assert.Len(t, unpaid, 2)

	_, _, err := f.payments.RecordPayment(f.billPayment(100))
	require.NoError(t, err)
	assert.Len(t, f.payments.ListDocuments("", billing.DocumentStatusPartial), 1)
}
