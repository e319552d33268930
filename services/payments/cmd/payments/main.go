package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/config"
	"github.com/kormo-mela/kormo-services/pkg/db"
	"github.com/kormo-mela/kormo-services/pkg/obs"
	"github.com/kormo-mela/kormo-services/pkg/web"
	httpx "github.com/kormo-mela/kormo-services/services/payments/internal/http"
	"github.com/kormo-mela/kormo-services/services/payments/internal/repository"
	"github.com/kormo-mela/kormo-services/services/payments/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "payments").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	shutdown := obs.InitTracer(logger, "payments")
	defer func() { _ = shutdown(context.Background()) }()

	gdb, err := db.Open(cfg.PostgresDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}

	repo := repository.NewBookingRepo(gdb)
	svc := service.NewPaymentSvc(repo, cfg.WebhookSecret)

	r := web.NewRouter(logger)
	httpx.NewHandler(svc, logger).Register(r)

	logger.Info().Str("addr", cfg.PaymentsHTTPAddr).Msg("payments listening")
	if err := r.Run(cfg.PaymentsHTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
