package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kormo-mela/kormo-services/pkg/bus"
	"github.com/kormo-mela/kormo-services/pkg/config"
	"github.com/kormo-mela/kormo-services/pkg/db"
	"github.com/kormo-mela/kormo-services/pkg/web"
	httpx "github.com/kormo-mela/kormo-services/services/search/internal/http"
	"github.com/kormo-mela/kormo-services/services/search/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "search").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Open(cfg.PostgresDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}

	rdb := bus.NewClient(cfg.RedisAddr(), cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	svc := service.NewSearchSvc(gdb, rdb, time.Duration(cfg.CacheTTLSec)*time.Second, logger)

	r := web.NewRouter(logger)
	httpx.NewHandler(svc, gdb, logger).Register(r)

	logger.Info().Str("addr", cfg.SearchHTTPAddr).Msg("search listening")
	if err := r.Run(cfg.SearchHTTPAddr); err != nil {
		logger.Fatal().Err(err).Msg("http server")
	}
}
