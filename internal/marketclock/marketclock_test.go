package marketclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCNOpen(t *testing.T) {
	t.Parallel()

	clock, err := New()
	require.NoError(t, err)

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// 2026-03-02 is a Monday, 2026-03-07 a Saturday.
	tests := []struct {
		name string
		day  int
		hour int
		min  int
		open bool
	}{
		{name: "before_open", day: 2, hour: 9, min: 14, open: false},
		{name: "at_open", day: 2, hour: 9, min: 15, open: true},
		{name: "mid_morning", day: 2, hour: 10, min: 30, open: true},
		{name: "before_lunch", day: 2, hour: 11, min: 34, open: true},
		{name: "lunch_start", day: 2, hour: 11, min: 35, open: false},
		{name: "during_lunch", day: 2, hour: 12, min: 0, open: false},
		{name: "last_lunch_minute", day: 2, hour: 12, min: 54, open: false},
		{name: "lunch_end", day: 2, hour: 12, min: 55, open: true},
		{name: "last_open_minute", day: 2, hour: 15, min: 5, open: true},
		{name: "after_close", day: 2, hour: 15, min: 6, open: false},
		{name: "saturday", day: 7, hour: 10, min: 30, open: false},
		{name: "sunday", day: 8, hour: 10, min: 30, open: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			now := time.Date(2026, 3, tt.day, tt.hour, tt.min, 0, 0, shanghai)
			assert.Equal(t, tt.open, clock.Status(now).CN)
		})
	}
}

func TestUSOpen(t *testing.T) {
	t.Parallel()

	clock, err := New()
	require.NoError(t, err)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		day  int
		hour int
		min  int
		open bool
	}{
		{name: "before_premarket", day: 2, hour: 3, min: 59, open: false},
		{name: "premarket_open", day: 2, hour: 4, min: 0, open: true},
		{name: "regular_hours", day: 2, hour: 10, min: 0, open: true},
		{name: "last_afterhours_minute", day: 2, hour: 19, min: 59, open: true},
		{name: "afterhours_close", day: 2, hour: 20, min: 0, open: false},
		{name: "saturday", day: 7, hour: 10, min: 0, open: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			now := time.Date(2026, 3, tt.day, tt.hour, tt.min, 0, 0, newYork)
			assert.Equal(t, tt.open, clock.Status(now).US)
		})
	}
}

// The check must resolve the exchange's local hour, not the caller's.
func TestUSOpenResolvesExchangeTimezone(t *testing.T) {
	t.Parallel()

	clock, err := New()
	require.NoError(t, err)

	// 2026-03-02 15:00 UTC is 10:00 in New York (EST, UTC-5): open.
	assert.True(t, clock.Status(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)).US)

	// 2026-03-03 02:00 UTC is still Monday 21:00 in New York: closed.
	assert.False(t, clock.Status(time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)).US)
}
