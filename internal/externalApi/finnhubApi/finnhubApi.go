package finnhubApi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/model/finnhubModel"
	"github.com/wzhuang/portfolio_watcher/utils"
)

type FinnhubApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *FinnhubApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.FinnhubApi.Url)
	return &FinnhubApi{client: client}
}

// GetQuotes issues one request per symbol concurrently. Every per-symbol
// failure is swallowed: the result contains only the symbols that resolved to
// a positive price. With an empty apiKey no requests are made at all.
func (a *FinnhubApi) GetQuotes(ctx context.Context, codes []string, apiKey string) map[string]decimal.Decimal {
	rqID := utils.GetRequestIDFromCtx(ctx)

	prices := make(map[string]decimal.Decimal, len(codes))

	if apiKey == "" {
		slog.Warn("FinnhubApi.GetQuotes skipped: no api key configured", slog.String("rqID", rqID))
		return prices
	}

	slog.Debug("start FinnhubApi.GetQuotes requests", slog.String("rqID", rqID), slog.Any("codes", codes))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()

			price, err := a.getQuote(ctx, code, apiKey)
			if err != nil {
				slog.Warn("FinnhubApi quote unresolved", slog.String("rqID", rqID), slog.String("code", code), slog.String("err", err.Error()))
				return
			}

			mu.Lock()
			prices[code] = price
			mu.Unlock()
		}(code)
	}

	wg.Wait()

	slog.Debug("FinnhubApi.GetQuotes requests complete", slog.String("rqID", rqID), slog.Int("resolved", len(prices)))

	return prices
}

func (a *FinnhubApi) getQuote(ctx context.Context, code, apiKey string) (decimal.Decimal, error) {
	resp, err := a.client.R().
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"symbol": code,
			"token":  apiKey,
		}).
		Get("/api/v1/quote")

	if err != nil {
		return decimal.Decimal{}, err
	}

	if resp.IsError() {
		return decimal.Decimal{}, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	rawQuote := finnhubModel.RawQuote{}
	if err := json.Unmarshal(resp.Body(), &rawQuote); err != nil {
		return decimal.Decimal{}, err
	}

	price := decimal.NewFromFloat(rawQuote.Current)
	if !price.IsPositive() {
		return decimal.Decimal{}, errors.New("no current price in response")
	}

	return price, nil
}
