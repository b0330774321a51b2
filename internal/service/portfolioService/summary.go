package portfolioService

import (
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/internal/model"
)

var hundred = decimal.NewFromInt(100)

// summarize derives the portfolio aggregates from the position set, the
// latest FX rate and the fixed cash pool. Pure function, no I/O.
func summarize(positions []model.Position, fxRate, cashCNY decimal.Decimal) model.PortfolioSummary {
	var usValueUSD, usCostUSD, cnValueCNY, cnCostCNY decimal.Decimal

	for _, p := range positions {
		switch p.Market {
		case model.MarketUS:
			usValueUSD = usValueUSD.Add(p.MarketValue)
			usCostUSD = usCostUSD.Add(p.CostValue())
		case model.MarketCN:
			cnValueCNY = cnValueCNY.Add(p.MarketValue)
			cnCostCNY = cnCostCNY.Add(p.CostValue())
		}
	}

	usValueCNY := usValueUSD.Mul(fxRate)
	usCostCNY := usCostUSD.Mul(fxRate)

	totalAssetCNY := cashCNY.Add(cnValueCNY).Add(usValueCNY)
	totalCostCNY := cashCNY.Add(cnCostCNY).Add(usCostCNY)
	totalPL := totalAssetCNY.Sub(totalCostCNY)

	usPLUSD := usValueUSD.Sub(usCostUSD)
	cnPLCNY := cnValueCNY.Sub(cnCostCNY)

	return model.PortfolioSummary{
		TotalAssetCNY:  totalAssetCNY,
		TotalPL:        totalPL,
		TotalPLPercent: percentOf(totalPL, totalCostCNY),

		USMarketValueUSD: usValueUSD,
		USCostUSD:        usCostUSD,
		USPLUSD:          usPLUSD,
		USPLPercent:      percentOf(usPLUSD, usCostUSD),

		CNMarketValueCNY: cnValueCNY,
		CNCostCNY:        cnCostCNY,
		CNPLCNY:          cnPLCNY,
		CNPLPercent:      percentOf(cnPLCNY, cnCostCNY),

		ExchangeRate: fxRate,
	}
}

// percentOf guards the only division in the system: a zero cost base yields 0.
func percentOf(pl, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return pl.Div(cost).Mul(hundred)
}
