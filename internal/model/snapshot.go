package model

import "time"

// PortfolioSnapshot is the read-only view handed to the presentation layer.
type PortfolioSnapshot struct {
	Positions    []Position       `json:"positions"`
	Summary      PortfolioSummary `json:"summary"`
	MarketStatus MarketStatus     `json:"marketStatus"`
	Refreshing   bool             `json:"refreshing"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}
