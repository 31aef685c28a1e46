// Package report builds the financial statements. Every report is a pure
// function of a store snapshot and a period: identical inputs always yield
// identical output.
package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/inventory"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shopspring/decimal"
)

// Kind identifies a report type
type Kind string

const (
	KindBalanceSheet Kind = "balance_sheet"
	KindProfitLoss   Kind = "profit_loss"
	KindStock        Kind = "stock_report"
)

// IsValid checks if the kind is a valid report Kind
func (k Kind) IsValid() bool {
	switch k {
	case KindBalanceSheet, KindProfitLoss, KindStock:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// AccountBalance is one account row within a report group
type AccountBalance struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheet groups account balances by type with per-group and overall totals
type BalanceSheet struct {
	Period           Period           `json:"period"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"total_assets"`
	TotalLiabilities decimal.Decimal  `json:"total_liabilities"`
	TotalEquity      decimal.Decimal  `json:"total_equity"`
}

// ProfitLoss reports income against expenses. NetProfit is a magnitude; the
// IsLoss flag carries the sign so a loss is never silently clamped to zero.
type ProfitLoss struct {
	Period       Period           `json:"period"`
	Income       []AccountBalance `json:"income"`
	Expenses     []AccountBalance `json:"expenses"`
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
	NetProfit    decimal.Decimal  `json:"net_profit"`
	IsLoss       bool             `json:"is_loss"`
}

// StockReport lists one row per goods product plus a grand-total valuation
type StockReport struct {
	Period         Period                `json:"period"`
	Items          []inventory.StockItem `json:"items"`
	TotalValuation decimal.Decimal       `json:"total_valuation"`
}

func accountGroup(accounts []*masterdata.Account, accountType masterdata.AccountType, source BalanceSource, period Period) ([]AccountBalance, decimal.Decimal) {
	rows := make([]AccountBalance, 0)
	total := decimal.Zero
	for _, account := range accounts {
		if account.Type != accountType {
			continue
		}
		balance := source.Balance(account, period)
		rows = append(rows, AccountBalance{
			AccountID:   account.ID,
			AccountName: account.Name,
			Balance:     balance,
		})
		total = total.Add(balance)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AccountName != rows[j].AccountName {
			return rows[i].AccountName < rows[j].AccountName
		}
		return rows[i].AccountID.String() < rows[j].AccountID.String()
	})
	return rows, total
}

// BuildBalanceSheet groups asset, liability and equity balances for the period
func BuildBalanceSheet(accounts []*masterdata.Account, source BalanceSource, period Period) *BalanceSheet {
	assets, totalAssets := accountGroup(accounts, masterdata.AccountTypeAsset, source, period)
	liabilities, totalLiabilities := accountGroup(accounts, masterdata.AccountTypeLiability, source, period)
	equity, totalEquity := accountGroup(accounts, masterdata.AccountTypeEquity, source, period)

	return &BalanceSheet{
		Period:           period,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}
}

// BuildProfitLoss nets income-classified balances against expense-classified
// ones for the period
func BuildProfitLoss(accounts []*masterdata.Account, source BalanceSource, period Period) *ProfitLoss {
	income, totalIncome := accountGroup(accounts, masterdata.AccountTypeIncome, source, period)
	expenses, totalExpense := accountGroup(accounts, masterdata.AccountTypeExpense, source, period)

	net := totalIncome.Sub(totalExpense)

	return &ProfitLoss{
		Period:       period,
		Income:       income,
		Expenses:     expenses,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetProfit:    net.Abs(),
		IsLoss:       net.IsNegative(),
	}
}

// BuildStockReport wraps the stock ledger rows with the grand-total valuation
func BuildStockReport(items []inventory.StockItem, period Period) *StockReport {
	return &StockReport{
		Period:         period,
		Items:          items,
		TotalValuation: inventory.TotalValuation(items),
	}
}
