package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/auth"
	"github.com/kormo-mela/kormo-services/pkg/config"
	"github.com/kormo-mela/kormo-services/pkg/db"
	"github.com/kormo-mela/kormo-services/pkg/web"
	httpx "github.com/kormo-mela/kormo-services/services/provider/internal/http"
	"github.com/kormo-mela/kormo-services/services/provider/internal/repository"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "provider").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Open(cfg.PostgresDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}

	repo := repository.NewProviderRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("migrate providers")
	}

	tokens := auth.NewTokenIssuer(cfg.AuthSecret,
		time.Duration(cfg.AccessTTLSec)*time.Second,
		time.Duration(cfg.RefreshTTLSec)*time.Second)

	r := web.NewRouter(logger)
	httpx.NewHandler(repo, tokens, gdb, logger).Register(r)

	logger.Info().Str("addr", cfg.ProviderHTTPAddr).Msg("provider listening")
	if err := r.Run(cfg.ProviderHTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
