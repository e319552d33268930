package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/bus"
	"github.com/kormo-mela/kormo-services/pkg/config"
	"github.com/kormo-mela/kormo-services/pkg/db"
	"github.com/kormo-mela/kormo-services/pkg/obs"
	"github.com/kormo-mela/kormo-services/pkg/web"
	httpx "github.com/kormo-mela/kormo-services/services/notifications/internal/http"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/notifier"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/repository"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/service"
	"github.com/kormo-mela/kormo-services/services/notifications/internal/subscriber"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "notifications").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	shutdown := obs.InitTracer(logger, "notifications")
	defer func() { _ = shutdown(context.Background()) }()

	gdb, err := db.Open(cfg.PostgresDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}

	rdb := bus.NewClient(cfg.RedisAddr(), cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	devices := repository.NewDeviceRepo(gdb)
	svc := service.NewNotifySvc(devices, notifier.NewConsole(logger), logger)

	// background consumer; runs until shutdown, resilient to channel outages
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub := subscriber.New(bus.NewChannel(rdb, cfg.EventChannel), svc.HandleEvent, logger)
	go func() {
		if err := sub.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("subscriber stopped")
		}
	}()
	logger.Info().Str("channel", cfg.EventChannel).Msg("subscriber started")

	r := web.NewRouter(logger)
	httpx.NewHandler(svc, logger).Register(r)

	logger.Info().Str("addr", cfg.NotifyHTTPAddr).Msg("notifications listening")
	if err := r.Run(cfg.NotifyHTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
