package portfolioService

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/model"
	"github.com/wzhuang/portfolio_watcher/utils"
)

type CNQuoteApi interface {
	GetQuotes(ctx context.Context, codes []string) (map[string]decimal.Decimal, error)
}

type USQuoteApi interface {
	GetQuotes(ctx context.Context, codes []string, apiKey string) map[string]decimal.Decimal
}

type FxApi interface {
	GetUSDCNYRate(ctx context.Context) (decimal.Decimal, error)
}

type MarketClock interface {
	Status(now time.Time) model.MarketStatus
}

// PortfolioService owns the authoritative position list, FX rate and Finnhub
// credential. Positions are only mutated inside Refresh, which runs at most
// once at a time; everything handed out is a copy.
type PortfolioService struct {
	cfg   *config.Config
	cnApi CNQuoteApi
	usApi USQuoteApi
	fxApi FxApi
	clock MarketClock

	refreshing atomic.Bool

	mu           sync.RWMutex
	positions    []model.Position
	summary      model.PortfolioSummary
	fxRate       decimal.Decimal
	apiKey       string
	marketStatus model.MarketStatus
	lastUpdated  time.Time
}

func New(cfg *config.Config, cnApi CNQuoteApi, usApi USQuoteApi, fxApi FxApi, clock MarketClock) *PortfolioService {
	instruments := config.DefaultPortfolio()
	positions := make([]model.Position, 0, len(instruments))
	for _, instrument := range instruments {
		positions = append(positions, model.NewPosition(instrument))
	}

	fxRate := cfg.Portfolio.DefaultFxRate

	return &PortfolioService{
		cfg:          cfg,
		cnApi:        cnApi,
		usApi:        usApi,
		fxApi:        fxApi,
		clock:        clock,
		positions:    positions,
		summary:      summarize(positions, fxRate, cfg.Portfolio.CashPoolCNY),
		fxRate:       fxRate,
		apiKey:       cfg.API.FinnhubApi.DefaultKey,
		marketStatus: clock.Status(time.Now()),
		lastUpdated:  time.Now(),
	}
}

// Refresh runs one fetch→merge→summarize cycle. A market is queried only when
// it is open or force is set; the FX rate is queried whenever anything else
// is. A trigger arriving while a cycle is running is dropped. Fetch failures
// never fail the cycle: unresolved prices keep their previous value.
func (s *PortfolioService) Refresh(ctx context.Context, force bool) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.Refresh"

	if !s.refreshing.CompareAndSwap(false, true) {
		slog.Info("refresh already in progress, trigger dropped", slog.String("rqID", rqID), slog.String("op", op))
		return nil
	}
	defer s.refreshing.Store(false)

	slog.Debug("Refresh start", slog.String("rqID", rqID), slog.String("op", op), slog.Bool("force", force))
	defer func() {
		slog.Debug("Refresh finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	status := s.clock.Status(time.Now())

	s.mu.Lock()
	s.marketStatus = status
	current := s.positions
	apiKey := s.apiKey
	s.mu.Unlock()

	fetchCN := force || status.CN
	fetchUS := force || status.US
	fetchFx := force || status.CN || status.US

	var (
		cnPrices map[string]decimal.Decimal
		usPrices map[string]decimal.Decimal
		fxRate   decimal.Decimal
		fxOK     bool
		wg       sync.WaitGroup
	)

	if fetchCN {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prices, err := s.cnApi.GetQuotes(ctx, codesFor(current, model.MarketCN))
			if err != nil {
				slog.Warn("cn quotes unavailable, keeping previous prices", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return
			}
			cnPrices = prices
		}()
	}

	if fetchUS {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usPrices = s.usApi.GetQuotes(ctx, codesFor(current, model.MarketUS), apiKey)
		}()
	}

	if fetchFx {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rate, err := s.fxApi.GetUSDCNYRate(ctx)
			if err != nil {
				slog.Warn("fx rate unavailable, keeping previous rate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return
			}
			fxRate = rate
			fxOK = true
		}()
	}

	wg.Wait()

	merged := mergePositions(current, cnPrices, usPrices)

	s.mu.Lock()
	if fxOK {
		s.fxRate = fxRate
	}
	s.positions = merged
	s.summary = summarize(merged, s.fxRate, s.cfg.Portfolio.CashPoolCNY)
	s.lastUpdated = time.Now()
	s.mu.Unlock()

	return nil
}

// UpdateAPIKey replaces the Finnhub credential and immediately runs a forced
// refresh with it.
func (s *PortfolioService) UpdateAPIKey(ctx context.Context, apiKey string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UpdateAPIKey"

	slog.Info("api key updated", slog.String("rqID", rqID), slog.String("op", op))

	s.mu.Lock()
	s.apiKey = apiKey
	s.mu.Unlock()

	return s.Refresh(ctx, true)
}

// UpdateMarketStatus recomputes the open/closed flags. Runs on its own
// cadence so the presentation layer sees fresh flags between refreshes.
func (s *PortfolioService) UpdateMarketStatus(ctx context.Context) error {
	status := s.clock.Status(time.Now())

	s.mu.Lock()
	s.marketStatus = status
	s.mu.Unlock()

	return nil
}

// Snapshot returns a read-only copy of the current state.
func (s *PortfolioService) Snapshot() model.PortfolioSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := make([]model.Position, len(s.positions))
	copy(positions, s.positions)

	return model.PortfolioSnapshot{
		Positions:    positions,
		Summary:      s.summary,
		MarketStatus: s.marketStatus,
		Refreshing:   s.refreshing.Load(),
		LastUpdated:  s.lastUpdated,
	}
}
