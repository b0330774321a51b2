package portfolioService

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/model"
)

type fakeCNApi struct {
	mu     sync.Mutex
	calls  int
	prices map[string]decimal.Decimal
	err    error

	started chan struct{}
	release chan struct{}
}

func (f *fakeCNApi) GetQuotes(_ context.Context, _ []string) (map[string]decimal.Decimal, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}

	return f.prices, f.err
}

func (f *fakeCNApi) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUSApi struct {
	mu      sync.Mutex
	calls   int
	lastKey string
	prices  map[string]decimal.Decimal
}

func (f *fakeUSApi) GetQuotes(_ context.Context, _ []string, apiKey string) map[string]decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastKey = apiKey
	return f.prices
}

func (f *fakeUSApi) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeFxApi struct {
	calls atomic.Int32
	rate  decimal.Decimal
	err   error
}

func (f *fakeFxApi) GetUSDCNYRate(_ context.Context) (decimal.Decimal, error) {
	f.calls.Add(1)
	return f.rate, f.err
}

type fakeClock struct {
	status model.MarketStatus
}

func (f fakeClock) Status(_ time.Time) model.MarketStatus {
	return f.status
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.API{
			FinnhubApi: config.FinnhubApi{DefaultKey: "default-key"},
		},
		Portfolio: config.Portfolio{
			CashPoolCNY:   decimal.RequireFromString("3000"),
			DefaultFxRate: decimal.RequireFromString("7.25"),
		},
	}
}

func TestRefreshSkipsFetchersWhenMarketsClosed(t *testing.T) {
	t.Parallel()

	cnApi := &fakeCNApi{}
	usApi := &fakeUSApi{}
	fxApi := &fakeFxApi{}

	srv := New(testConfig(), cnApi, usApi, fxApi, fakeClock{})

	before := srv.Snapshot()

	require.NoError(t, srv.Refresh(context.Background(), false))

	assert.Equal(t, 0, cnApi.callCount())
	assert.Equal(t, 0, usApi.callCount())
	assert.Equal(t, int32(0), fxApi.calls.Load())

	after := srv.Snapshot()
	assert.Equal(t, before.Positions, after.Positions)
	assert.Equal(t, before.Summary, after.Summary)
	assert.False(t, after.Refreshing)
}

func TestForcedRefreshInvokesAllFetchers(t *testing.T) {
	t.Parallel()

	cnApi := &fakeCNApi{prices: map[string]decimal.Decimal{"sh601328": decimal.RequireFromString("8.00")}}
	usApi := &fakeUSApi{prices: map[string]decimal.Decimal{"QQQM": decimal.RequireFromString("250.00")}}
	fxApi := &fakeFxApi{rate: decimal.RequireFromString("7.0")}

	srv := New(testConfig(), cnApi, usApi, fxApi, fakeClock{})

	require.NoError(t, srv.Refresh(context.Background(), true))

	assert.Equal(t, 1, cnApi.callCount())
	assert.Equal(t, 1, usApi.callCount())
	assert.Equal(t, "default-key", usApi.lastKey)
	assert.Equal(t, int32(1), fxApi.calls.Load())

	snapshot := srv.Snapshot()
	assert.True(t, snapshot.Summary.ExchangeRate.Equal(decimal.RequireFromString("7.0")))

	for _, p := range snapshot.Positions {
		if p.Code == "sh601328" {
			assert.True(t, p.CurrentPrice.Equal(decimal.RequireFromString("8.00")))
			assert.True(t, p.MarketValue.Equal(decimal.RequireFromString("800")))
		}
		if p.Code == "QQQM" {
			assert.True(t, p.CurrentPrice.Equal(decimal.RequireFromString("250.00")))
		}
	}
}

func TestRefreshKeepsPreviousValuesOnFetchFailure(t *testing.T) {
	t.Parallel()

	cnApi := &fakeCNApi{err: errors.New("transport down")}
	usApi := &fakeUSApi{}
	fxApi := &fakeFxApi{err: errors.New("fx down")}

	srv := New(testConfig(), cnApi, usApi, fxApi, fakeClock{})

	before := srv.Snapshot()

	require.NoError(t, srv.Refresh(context.Background(), true))

	after := srv.Snapshot()
	assert.Equal(t, before.Positions, after.Positions)
	assert.True(t, after.Summary.ExchangeRate.Equal(decimal.RequireFromString("7.25")))
	assert.False(t, after.Refreshing)
}

func TestUpdateAPIKeyForcesRefreshWithNewKey(t *testing.T) {
	t.Parallel()

	cnApi := &fakeCNApi{}
	usApi := &fakeUSApi{}
	fxApi := &fakeFxApi{rate: decimal.RequireFromString("7.1")}

	// both markets closed: the credential change must still reach Finnhub
	srv := New(testConfig(), cnApi, usApi, fxApi, fakeClock{})

	require.NoError(t, srv.UpdateAPIKey(context.Background(), "new-key"))

	assert.Equal(t, 1, usApi.callCount())
	assert.Equal(t, "new-key", usApi.lastKey)
}

func TestOverlappingTriggerIsDropped(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	cnApi := &fakeCNApi{started: started, release: release}
	usApi := &fakeUSApi{}
	fxApi := &fakeFxApi{rate: decimal.RequireFromString("7.0")}

	srv := New(testConfig(), cnApi, usApi, fxApi, fakeClock{status: model.MarketStatus{CN: true}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Refresh(context.Background(), false)
	}()

	<-started
	assert.True(t, srv.Snapshot().Refreshing)

	// second trigger while the first cycle is still fetching: dropped
	require.NoError(t, srv.Refresh(context.Background(), true))
	assert.Equal(t, 1, cnApi.callCount())

	close(release)
	<-done

	assert.False(t, srv.Snapshot().Refreshing)
}

func TestUpdateMarketStatus(t *testing.T) {
	t.Parallel()

	srv := New(testConfig(), &fakeCNApi{}, &fakeUSApi{}, &fakeFxApi{}, fakeClock{status: model.MarketStatus{CN: true, US: true}})

	require.NoError(t, srv.UpdateMarketStatus(context.Background()))

	status := srv.Snapshot().MarketStatus
	assert.True(t, status.CN)
	assert.True(t, status.US)
}
