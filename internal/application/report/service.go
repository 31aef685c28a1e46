// Package report implements the reporting engine facade. Every report is
// computed from one store snapshot, so the statements are internally
// consistent even while writes continue.
package report

import (
	"time"

	"github.com/shivaccounts/backend/internal/domain/inventory"
	"github.com/shivaccounts/backend/internal/domain/report"
	"github.com/shivaccounts/backend/internal/domain/shared"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"go.uber.org/zap"
)

// Service exposes reporting operations
type Service struct {
	store  *memory.Store
	logger *zap.Logger
}

// NewService creates the reporting service
func NewService(store *memory.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Result is the union of the three report shapes; exactly one field is set
type Result struct {
	Kind         report.Kind         `json:"kind"`
	BalanceSheet *report.BalanceSheet `json:"balance_sheet,omitempty"`
	ProfitLoss   *report.ProfitLoss   `json:"profit_loss,omitempty"`
	Stock        *report.StockReport  `json:"stock_report,omitempty"`
}

// GetReport builds the requested report over [from, to]
func (s *Service) GetReport(kind report.Kind, from, to time.Time) (*Result, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid report kind %q", kind)
	}
	period, err := report.NewPeriod(from, to)
	if err != nil {
		return nil, err
	}

	state := s.store.Snapshot().State
	result := &Result{Kind: kind}

	switch kind {
	case report.KindBalanceSheet:
		source := report.NewSettlementFlowSource(state.PaymentList())
		result.BalanceSheet = report.BuildBalanceSheet(state.AccountList(), source, period)
	case report.KindProfitLoss:
		source := report.NewSettlementFlowSource(state.PaymentList())
		result.ProfitLoss = report.BuildProfitLoss(state.AccountList(), source, period)
	case report.KindStock:
		items := inventory.ComputeLedger(state.ProductList(), state.OrderList())
		result.Stock = report.BuildStockReport(items, period)
	}

	return result, nil
}

// ListStock returns the current stock ledger outside any reporting period
func (s *Service) ListStock() []inventory.StockItem {
	state := s.store.Snapshot().State
	return inventory.ComputeLedger(state.ProductList(), state.OrderList())
}
