package report

import (
	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shopspring/decimal"
)

// BalanceSource supplies the in-period balance of a chart-of-accounts entry.
// The source data carries no true ledger postings, so the default source
// derives balances from payment flow; a posting ledger can be substituted
// later without changing any report shape.
type BalanceSource interface {
	Balance(account *masterdata.Account, period Period) decimal.Decimal
}

// SettlementFlowSource derives an account's balance from the payments posted
// to it within the period: receipts count positive, outgoing payments
// negative. Payments are the only posting-like link in the entity model that
// names an account.
type SettlementFlowSource struct {
	payments []*billing.Payment
}

// NewSettlementFlowSource creates a balance source over a payment snapshot
func NewSettlementFlowSource(payments []*billing.Payment) *SettlementFlowSource {
	return &SettlementFlowSource{payments: payments}
}

// Balance implements BalanceSource
func (s *SettlementFlowSource) Balance(account *masterdata.Account, period Period) decimal.Decimal {
	balance := decimal.Zero
	for _, p := range s.payments {
		if p.AccountID != account.ID {
			continue
		}
		if !period.Contains(p.PaymentDate) {
			continue
		}
		balance = balance.Add(p.SignedAmount())
	}
	return balance
}

// StaticBalanceSource serves fixed balances keyed by account ID, ignoring the
// period. Useful for seeding descriptive balances the way the original data
// models them, and in tests.
type StaticBalanceSource struct {
	balances map[uuid.UUID]decimal.Decimal
}

// NewStaticBalanceSource creates a fixed balance source
func NewStaticBalanceSource(balances map[uuid.UUID]decimal.Decimal) *StaticBalanceSource {
	return &StaticBalanceSource{balances: balances}
}

// Balance implements BalanceSource
func (s *StaticBalanceSource) Balance(account *masterdata.Account, _ Period) decimal.Decimal {
	return s.balances[account.ID]
}
