package model

import "github.com/shopspring/decimal"

// PortfolioSummary aggregates all positions per market and in total.
// Totals are expressed in CNY, the US block additionally in its native USD.
type PortfolioSummary struct {
	TotalAssetCNY  decimal.Decimal `json:"totalAssetCNY"`
	TotalPL        decimal.Decimal `json:"totalPL"`
	TotalPLPercent decimal.Decimal `json:"totalPLPercent"`

	USMarketValueUSD decimal.Decimal `json:"usMarketValueUSD"`
	USCostUSD        decimal.Decimal `json:"usCostUSD"`
	USPLUSD          decimal.Decimal `json:"usPLUSD"`
	USPLPercent      decimal.Decimal `json:"usPLPercent"`

	CNMarketValueCNY decimal.Decimal `json:"cnMarketValueCNY"`
	CNCostCNY        decimal.Decimal `json:"cnCostCNY"`
	CNPLCNY          decimal.Decimal `json:"cnPLCNY"`
	CNPLPercent      decimal.Decimal `json:"cnPLPercent"`

	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}
