package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"MarketLens/internal/common"
	"MarketLens/internal/config"
	"MarketLens/internal/dashboard"
	"MarketLens/internal/gateway"
	"MarketLens/internal/notifier"
	"MarketLens/internal/scheduler"
	"MarketLens/internal/server"
)

func main() {
	defaultPath := common.DefaultConfigPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	configPath := flag.String("config", defaultPath, "Path to config file")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).
			Str("error_code", common.ErrCodeConfigLoadFailed.String()).
			Str("error_message", common.ErrMsgConfigLoadFailed.String()).
			Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	var gw gateway.Gateway
	if cfg.DataSource.Mock {
		gw = gateway.NewDemoGateway(time.Now().UTC().Truncate(time.Minute))
	} else {
		gw = gateway.NewHTTPGateway(cfg.DataSource.BaseURL, cfg.Proxy, cfg.DataSource.RequestTimeout)
	}
	log.Info().Str("gateway", gw.Name()).Msg("data source ready")

	var alerts notifier.Notifier = notifier.NewLogNotifier()
	if cfg.Notify.WebhookURL != "" {
		alerts = notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Proxy, cfg.Notify.MaxRetries)
	}

	ctrl := dashboard.New(gw, dashboard.Options{
		Notifier:      alerts,
		OpenBestItems: *cfg.Dashboard.OpenBestItems,
	})

	refresh, err := scheduler.NewAutoRefresh(cfg.Refresh.Spec, ctrl.Refresh)
	if err != nil {
		log.Fatal().Err(err).
			Str("error_code", common.ErrCodeSchedulerFailed.String()).
			Str("error_message", common.ErrMsgSchedulerFailed.String()).
			Msg("Failed to create scheduler")
	}
	ctrl.AttachRefresher(refresh)
	refresh.Start()
	defer refresh.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = ctrl.Run(ctx)
	}()

	srv, err := server.NewServer(ctrl, cfg.Server.Title)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build HTTP server")
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.ListenAddr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).
				Str("error_code", common.ErrCodeHTTPServeFailed.String()).
				Str("error_message", common.ErrMsgHTTPServeFailed.String()).
				Msg("HTTP serve failed")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.CloseClients()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown")
	}
	refresh.Disable()
	cancel()
	<-loopDone
	log.Info().Msg("MarketLens stopped")
}
