package tencentApi

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/model/tencentModel"
	"github.com/wzhuang/portfolio_watcher/utils"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

type TencentApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *TencentApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.TencentApi.Url)
	return &TencentApi{client: client}
}

// GetQuotes resolves last traded prices for a batch of A-share codes in one
// request. Codes whose record is missing or malformed are omitted from the
// result; only a transport-level failure returns an error.
func (a *TencentApi) GetQuotes(ctx context.Context, codes []string) (map[string]decimal.Decimal, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	if len(codes) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	slog.Debug("start TencentApi.GetQuotes request", slog.String("rqID", rqID), slog.Any("codes", codes))

	resp, err := a.client.R().
		Get("/q=" + strings.Join(codes, ","))

	if err != nil {
		slog.Error("error while dialing TencentApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	body, err := decodeGBK(resp.Body())
	if err != nil {
		slog.Error("can't decode TencentApi response from GBK", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(codes))
	for _, line := range strings.Split(body, ";") {
		quote, ok := parseQuoteLine(line)
		if !ok {
			continue
		}
		prices[quote.Code] = quote.Last
	}

	slog.Debug("TencentApi.GetQuotes request complete", slog.String("rqID", rqID), slog.Int("resolved", len(prices)))

	return prices, nil
}

// The feed serves GBK-encoded text (instrument names are Chinese).
func decodeGBK(b []byte) (string, error) {
	r := transform.NewReader(bytes.NewReader(b), simplifiedchinese.GBK.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// parseQuoteLine parses one `v_<code>="f0~name~code~last~..."` record.
// Anything that does not yield a positive price is rejected.
func parseQuoteLine(line string) (tencentModel.Quote, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "v_") {
		return tencentModel.Quote{}, false
	}

	eq := strings.Index(line, "=")
	if eq < 0 {
		return tencentModel.Quote{}, false
	}

	code := line[len("v_"):eq]
	fields := strings.Split(strings.Trim(line[eq+1:], `"`), "~")
	if code == "" || len(fields) < 4 {
		return tencentModel.Quote{}, false
	}

	last, err := decimal.NewFromString(fields[3])
	if err != nil || !last.IsPositive() {
		return tencentModel.Quote{}, false
	}

	return tencentModel.Quote{Code: code, Name: fields[1], Last: last}, true
}
