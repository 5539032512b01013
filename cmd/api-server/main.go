package main

import (
	"context"
	"net/http"
	"time"

	appstaking "stake-market/internal/app/staking"
	"stake-market/internal/config"
	"stake-market/internal/logging"
	"stake-market/internal/store"
	httptransport "stake-market/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.StakeExpiryMins > 0 {
		sweeper := appstaking.NewService(st)
		maxAge := time.Duration(cfg.StakeExpiryMins) * time.Minute
		sweeper.StartSweeper(context.Background(), time.Minute, maxAge)
		log.Info().Int("max_age_minutes", cfg.StakeExpiryMins).Msg("stake expiry sweeper started")
	}

	r := httptransport.NewRouter(st, cfg)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
