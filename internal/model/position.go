package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Instrument is one entry of the static portfolio. Immutable for the process lifetime.
type Instrument struct {
	Market Market          `json:"market"`
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Shares int             `json:"shares"`
	Cost   decimal.Decimal `json:"cost"`
}

func (i Instrument) CostValue() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Shares)))
}

// Position extends Instrument with its live valuation state.
// MarketValue, PL and PLPercent are derived from CurrentPrice and are only
// ever recomputed together via WithPrice.
type Position struct {
	Instrument
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	MarketValue  decimal.Decimal `json:"marketValue"`
	PL           decimal.Decimal `json:"pl"`
	PLPercent    decimal.Decimal `json:"plPercent"`
}

// NewPosition seeds a position at price = cost, so the initial P/L is zero.
func NewPosition(instrument Instrument) Position {
	return Position{Instrument: instrument}.WithPrice(instrument.Cost)
}

// WithPrice returns a copy of the position repriced at price, with all
// derived fields recomputed.
func (p Position) WithPrice(price decimal.Decimal) Position {
	costValue := p.CostValue()

	p.CurrentPrice = price
	p.MarketValue = price.Mul(decimal.NewFromInt(int64(p.Shares)))
	p.PL = p.MarketValue.Sub(costValue)

	if costValue.IsZero() {
		p.PLPercent = decimal.Zero
	} else {
		p.PLPercent = p.PL.Div(costValue).Mul(hundred)
	}

	return p
}
