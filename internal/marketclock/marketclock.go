package marketclock

import (
	"fmt"
	"time"

	"github.com/wzhuang/portfolio_watcher/internal/model"
)

// Clock answers whether each market is open at a given instant. It is a pure
// function of the instant and the fixed trading-hour tables, so it may be
// called at any frequency.
type Clock struct {
	shanghai *time.Location
	newYork  *time.Location
}

func New() (*Clock, error) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return nil, fmt.Errorf("load Asia/Shanghai: %w", err)
	}

	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load America/New_York: %w", err)
	}

	return &Clock{shanghai: shanghai, newYork: newYork}, nil
}

func (c *Clock) Status(now time.Time) model.MarketStatus {
	return model.MarketStatus{
		CN: c.cnOpen(now),
		US: c.usOpen(now),
	}
}

// A-shares trade Mon-Fri 09:15-15:05 Shanghai time, with a lunch break
// [11:35, 12:55) during which the market counts as closed.
func (c *Clock) cnOpen(now time.Time) bool {
	t := now.In(c.shanghai)
	if isWeekend(t.Weekday()) {
		return false
	}

	hm := t.Hour()*100 + t.Minute()
	if hm < 915 || hm > 1505 {
		return false
	}
	if hm >= 1135 && hm < 1255 {
		return false
	}
	return true
}

// US hours cover pre-market through after-hours: Mon-Fri 04:00-20:00 in the
// exchange's timezone, not the caller's.
func (c *Clock) usOpen(now time.Time) bool {
	t := now.In(c.newYork)
	if isWeekend(t.Weekday()) {
		return false
	}

	return t.Hour() >= 4 && t.Hour() < 20
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
