package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/auth"
	"github.com/kormo-mela/kormo-services/pkg/config"
	"github.com/kormo-mela/kormo-services/pkg/db"
	"github.com/kormo-mela/kormo-services/pkg/web"
	httpx "github.com/kormo-mela/kormo-services/services/auth/internal/http"
	"github.com/kormo-mela/kormo-services/services/auth/internal/repository"
	"github.com/kormo-mela/kormo-services/services/auth/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "auth").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Open(cfg.PostgresDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}

	repo := repository.NewUserRepo(gdb)
	if err := repo.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("migrate users")
	}

	tokens := auth.NewTokenIssuer(cfg.AuthSecret,
		time.Duration(cfg.AccessTTLSec)*time.Second,
		time.Duration(cfg.RefreshTTLSec)*time.Second)
	svc := service.NewAuthSvc(repo, tokens)

	r := web.NewRouter(logger)
	httpx.NewHandler(svc, gdb, logger).Register(r)

	logger.Info().Str("addr", cfg.AuthHTTPAddr).Msg("auth listening")
	if err := r.Run(cfg.AuthHTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
