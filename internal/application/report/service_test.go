package report

import (
	"testing"
	"time"

	appbilling "github.com/shivaccounts/backend/internal/application/billing"
	appmasterdata "github.com/shivaccounts/backend/internal/application/masterdata"
	apptrade "github.com/shivaccounts/backend/internal/application/trade"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/report"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seedBusiness runs a full cycle: buy 2 chairs at 6500+18%, sell 2 at
// 8500+18%, settle both documents in full through the bank account.
func seedBusiness(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	md := appmasterdata.NewService(store, logger)
	orders := apptrade.NewOrderService(store, logger)
	payments := appbilling.NewPaymentService(store, logger)

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

	type leg struct {
		kind         trade.OrderKind
		counterparty *masterdata.Contact
		direction    billing.PaymentDirection
		amount       int64
	}
	for _, l := range []leg{
		{trade.OrderKindPurchase, vendor, billing.PaymentDirectionOutgoing, 15340},
		{trade.OrderKindSales, customer, billing.PaymentDirectionReceipt, 20060},
	} {
		order, err := orders.CreateOrder(apptrade.CreateOrderInput{Kind: l.kind, CounterpartyID: l.counterparty.ID, OrderDate: time.Now()})
		require.NoError(t, err)
		_, err = orders.AddItem(order.ID, apptrade.ItemInput{ProductID: chair.ID, Quantity: decimal.NewFromInt(2)})
		require.NoError(t, err)
		_, _, err = orders.Transition(order.ID, trade.OrderStatusConfirmed)
		require.NoError(t, err)
		_, doc, err := orders.Transition(order.ID, l.kind.TerminalStatus())
		require.NoError(t, err)
		_, _, err = payments.RecordPayment(appbilling.PaymentInput{
			Direction:   l.direction,
			DocumentID:  doc.ID,
			Amount:      decimal.NewFromInt(l.amount),
			Method:      billing.PaymentMethodBank,
			AccountID:   bank.ID,
			PaymentDate: time.Now(),
		})
		require.NoError(t, err)
	}

	return NewService(store, logger), store
}

func period() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)
}

func TestService_GetReport_Validation(t *testing.T) {
	svc, _ := seedBusiness(t)
	from, to := period()

	_, err := svc.GetReport("cashflow", from, to)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidInput))

	_, err = svc.GetReport(report.KindBalanceSheet, to, from)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidRange))

	_, err = svc.GetReport(report.KindBalanceSheet, time.Time{}, to)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidRange))
}

func TestService_BalanceSheet_FromPaymentFlow(t *testing.T) {
	svc, _ := seedBusiness(t)
	from, to := period()

	result, err := svc.GetReport(report.KindBalanceSheet, from, to)
	require.NoError(t, err)
	require.NotNil(t, result.BalanceSheet)
	assert.Nil(t, result.ProfitLoss)

	sheet := result.BalanceSheet
	require.Len(t, sheet.Assets, 1)
	assert.Equal(t, "Bank", sheet.Assets[0].AccountName)
	assert.Equal(t, "4720", sheet.Assets[0].Balance.String(), "20060 in minus 15340 out")
	assert.Equal(t, "4720", sheet.TotalAssets.String())
	assert.Empty(t, sheet.Liabilities)
}

func TestService_StockReport(t *testing.T) {
	svc, _ := seedBusiness(t)
	from, to := period()

	result, err := svc.GetReport(report.KindStock, from, to)
	require.NoError(t, err)
	require.NotNil(t, result.Stock)

	require.Len(t, result.Stock.Items, 1)
	row := result.Stock.Items[0]
	assert.Equal(t, "2", row.Purchased.String())
	assert.Equal(t, "2", row.Sold.String())
	assert.True(t, row.Available.IsZero())
	assert.False(t, row.Oversold)
	assert.True(t, result.Stock.TotalValuation.IsZero())
}

func TestService_ListStock_MatchesReport(t *testing.T) {
	svc, _ := seedBusiness(t)
	from, to := period()

	result, err := svc.GetReport(report.KindStock, from, to)
	require.NoError(t, err)
	assert.Equal(t, result.Stock.Items, svc.ListStock())
}
