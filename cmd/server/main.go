package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/bootstrap"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/config"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/server"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/cache"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logg := logger.New(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseOptions(), logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := bootstrap.Migrate(db); err != nil {
		logg.Fatal().Err(err).Msg("migration failed")
	}

	if !cfg.IsProduction() && cfg.Admin.Email != "" {
		if err := bootstrap.SeedAdminUser(db, cfg.Admin.Email, cfg.Admin.Password, cfg.Auth.BcryptCost, logg); err != nil {
			logg.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.Connect(ctx, cfg.CacheOptions())
	if err != nil {
		if cfg.Session.Store == "redis" {
			logg.Fatal().Err(err).Msg("redis is required for the session store")
		}
		logg.Warn().Err(err).Msg("redis unavailable, continuing without cache")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.NewServer(cfg, db, redisClient, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to build server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Fatal().Err(err).Msg("server exited with error")
		}
		return
	case <-ctx.Done():
	}

	logg.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
