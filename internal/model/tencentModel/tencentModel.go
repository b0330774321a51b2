package tencentModel

import "github.com/shopspring/decimal"

// Quote is one parsed record of the qt.gtimg.cn feed. The raw record is a
// GBK-encoded `v_<code>="..."` assignment whose value is a ~-separated field
// list: field 1 is the short name, field 3 the last traded price.
type Quote struct {
	Code string
	Name string
	Last decimal.Decimal
}
