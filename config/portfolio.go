package config

import (
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/internal/model"
)

// DefaultPortfolio is the static instrument universe. The list is fixed for
// the process lifetime, positions are derived from it at startup.
func DefaultPortfolio() []model.Instrument {
	return []model.Instrument{
		{Market: model.MarketUS, Code: "QQQM", Name: "纳指100", Shares: 1, Cost: decimal.RequireFromString("241.580")},
		{Market: model.MarketUS, Code: "SPYM", Name: "标普500", Shares: 1, Cost: decimal.RequireFromString("78.670")},
		{Market: model.MarketUS, Code: "GLDM", Name: "黄金", Shares: 1, Cost: decimal.RequireFromString("81.840")},
		{Market: model.MarketUS, Code: "SCHD", Name: "红利ETF", Shares: 3, Cost: decimal.RequireFromString("27.110")},

		{Market: model.MarketCN, Code: "sh601328", Name: "交通银行", Shares: 100, Cost: decimal.RequireFromString("7.670")},
		{Market: model.MarketCN, Code: "sh601988", Name: "中国银行", Shares: 100, Cost: decimal.RequireFromString("6.210")},
		{Market: model.MarketCN, Code: "sh601728", Name: "中国电信", Shares: 100, Cost: decimal.RequireFromString("6.860")},
	}
}
