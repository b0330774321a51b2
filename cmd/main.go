package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wzhuang/portfolio_watcher/config"
	"github.com/wzhuang/portfolio_watcher/internal/externalApi/finnhubApi"
	"github.com/wzhuang/portfolio_watcher/internal/externalApi/frankfurterApi"
	"github.com/wzhuang/portfolio_watcher/internal/externalApi/tencentApi"
	"github.com/wzhuang/portfolio_watcher/internal/marketclock"
	"github.com/wzhuang/portfolio_watcher/internal/reportGenerator/xlsxGenerator"
	"github.com/wzhuang/portfolio_watcher/internal/scheduler"
	"github.com/wzhuang/portfolio_watcher/internal/service/portfolioService"
	"github.com/wzhuang/portfolio_watcher/internal/transport/httpapi"
	"github.com/wzhuang/portfolio_watcher/utils"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	clock, err := marketclock.New()
	if err != nil {
		slog.Error("can't init market clock", slog.String("err", err.Error()))
		os.Exit(1)
	}

	tencentApiClient := tencentApi.New(cfg)
	finnhubApiClient := finnhubApi.New(cfg)
	frankfurterApiClient := frankfurterApi.New(cfg)

	portfolioSrv := portfolioService.New(cfg, tencentApiClient, finnhubApiClient, frankfurterApiClient, clock)

	// Forced startup refresh, off the main goroutine so the API comes up right away.
	go func() {
		ctx, _ := utils.CreateCtxWithRqID(context.Background())
		_ = portfolioSrv.Refresh(ctx, true)
	}()

	sched := scheduler.New()
	sched.NewIntervalJob("refresh portfolio", func(ctx context.Context) error {
		return portfolioSrv.Refresh(ctx, false)
	}, cfg.Jobs.RefreshInterval, false)
	sched.NewIntervalJob("update market status", portfolioSrv.UpdateMarketStatus, cfg.Jobs.MarketStatusInterval, true)
	sched.Start()
	defer sched.Stop()

	reportGenerator := xlsxGenerator.New()

	controller := httpapi.NewController(portfolioSrv, reportGenerator)

	server := httpapi.NewServer(cfg, controller)
	server.Start()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Stop(shutdownCtx)
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
