// Package inventory derives the stock ledger. The ledger is a pure read-side
// aggregation over products and orders: it holds no state of its own, so it
// can never drift from the order data it is computed from.
package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// StockItem is one derived ledger row for a goods product.
// available = purchased - sold; a negative value marks the row as oversold,
// which is surfaced as a warning rather than rejected at write time.
type StockItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Purchased   decimal.Decimal `json:"purchased_qty"`
	Sold        decimal.Decimal `json:"sold_qty"`
	Available   decimal.Decimal `json:"available_qty"`
	Valuation   decimal.Decimal `json:"valuation"`
	Oversold    bool            `json:"oversold,omitempty"`
}

// ComputeLedger builds the stock ledger from a consistent snapshot of
// products and orders. Only goods products appear; only orders at or beyond
// confirmed status count (drafts are tentative). Valuation is the product's
// current purchase price times the available quantity.
func ComputeLedger(products []*masterdata.Product, orders []*trade.Order) []StockItem {
	purchased := make(map[uuid.UUID]decimal.Decimal)
	sold := make(map[uuid.UUID]decimal.Decimal)

	for _, order := range orders {
		if !order.CountsTowardStock() {
			continue
		}
		for _, item := range order.Items {
			switch order.Kind {
			case trade.OrderKindPurchase:
				purchased[item.ProductID] = purchased[item.ProductID].Add(item.Quantity)
			case trade.OrderKindSales:
				sold[item.ProductID] = sold[item.ProductID].Add(item.Quantity)
			}
		}
	}

	rows := make([]StockItem, 0, len(products))
	for _, product := range products {
		if !product.IsGoods() {
			continue
		}
		in := purchased[product.ID]
		out := sold[product.ID]
		available := in.Sub(out)

		rows = append(rows, StockItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Purchased:   in,
			Sold:        out,
			Available:   available,
			Valuation:   product.PurchasePrice.Mul(available),
			Oversold:    available.IsNegative(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].ProductID.String() < rows[j].ProductID.String()
	})

	return rows
}

// TotalValuation sums the valuation over all ledger rows
func TotalValuation(rows []StockItem) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Valuation)
	}
	return total
}
