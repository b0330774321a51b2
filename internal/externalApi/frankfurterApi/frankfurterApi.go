package frankfurterApi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/model/frankfurterModel"
	"github.com/wzhuang/portfolio_watcher/utils"
)

type FrankfurterApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *FrankfurterApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.FrankfurterApi.Url)
	return &FrankfurterApi{client: client}
}

// GetUSDCNYRate fetches the USD→CNY rate. Any failure returns an error so the
// caller keeps its previous rate.
func (a *FrankfurterApi) GetUSDCNYRate(ctx context.Context) (decimal.Decimal, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	slog.Debug("start FrankfurterApi.GetUSDCNYRate request", slog.String("rqID", rqID))

	resp, err := a.client.R().
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"from": "USD",
			"to":   "CNY",
		}).
		Get("/latest")

	if err != nil {
		slog.Error("error while dialing FrankfurterApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return decimal.Decimal{}, err
	}

	rawRates := frankfurterModel.RawRates{}
	if err := json.Unmarshal(resp.Body(), &rawRates); err != nil {
		slog.Error("can't unmarshall response into frankfurterModel.RawRates", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return decimal.Decimal{}, err
	}

	rate := decimal.NewFromFloat(rawRates.Rates["CNY"])
	if !rate.IsPositive() {
		slog.Error("no CNY rate in FrankfurterApi response", slog.String("rqID", rqID))
		return decimal.Decimal{}, errors.New("no CNY rate in response")
	}

	slog.Debug("FrankfurterApi.GetUSDCNYRate request complete", slog.String("rqID", rqID), slog.String("rate", rate.String()))

	return rate, nil
}
