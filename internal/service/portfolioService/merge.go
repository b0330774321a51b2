package portfolioService

import (
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/internal/model"
)

func codesFor(positions []model.Position, market model.Market) []string {
	codes := make([]string, 0, len(positions))
	for _, p := range positions {
		if p.Market == market {
			codes = append(codes, p.Code)
		}
	}
	return codes
}

// mergePositions reprices each position that has a fresh quote and leaves the
// rest untouched. It never mutates its input and preserves order; a nil price
// map simply reprices nothing.
func mergePositions(positions []model.Position, cnPrices, usPrices map[string]decimal.Decimal) []model.Position {
	merged := make([]model.Position, 0, len(positions))

	for _, p := range positions {
		prices := cnPrices
		if p.Market == model.MarketUS {
			prices = usPrices
		}

		if price, ok := prices[p.Code]; ok {
			p = p.WithPrice(price)
		}

		merged = append(merged, p)
	}

	return merged
}
