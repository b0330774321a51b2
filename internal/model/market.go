package model

type Market string

const (
	MarketCN Market = "cn"
	MarketUS Market = "us"
)

// MarketStatus is recomputed from wall-clock time, it carries no identity.
type MarketStatus struct {
	CN bool `json:"cn"`
	US bool `json:"us"`
}
