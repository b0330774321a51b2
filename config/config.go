package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP      HTTP
	API       API
	Jobs      Jobs
	Portfolio Portfolio
}

type HTTP struct {
	Port         int           `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

type API struct {
	Debug          bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout        time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	TencentApi     TencentApi
	FinnhubApi     FinnhubApi
	FrankfurterApi FrankfurterApi
}

type TencentApi struct {
	Url string `env:"TENCENT_API_URL" envDefault:"https://qt.gtimg.cn"`
}

type FinnhubApi struct {
	Url        string `env:"FINNHUB_API_URL" envDefault:"https://finnhub.io"`
	DefaultKey string `env:"FINNHUB_DEFAULT_KEY" envDefault:""`
}

type FrankfurterApi struct {
	Url string `env:"FRANKFURTER_API_URL" envDefault:"https://api.frankfurter.app"`
}

type Jobs struct {
	RefreshInterval      time.Duration `env:"REFRESH_JOB_INTERVAL" envDefault:"10s"`
	MarketStatusInterval time.Duration `env:"MARKET_STATUS_JOB_INTERVAL" envDefault:"1m"`
}

type Portfolio struct {
	CashPoolCNY   decimal.Decimal `env:"CASH_POOL_CNY" envDefault:"3000"`
	DefaultFxRate decimal.Decimal `env:"DEFAULT_USD_CNY_RATE" envDefault:"7.25"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
