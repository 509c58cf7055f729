package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/api"
	"github.com/ev-charging/api/internal/api/handlers"
	mw "github.com/ev-charging/api/internal/api/middleware"
	"github.com/ev-charging/api/internal/auth"
	"github.com/ev-charging/api/internal/services"
	"github.com/ev-charging/api/internal/storage"
	"github.com/ev-charging/api/pkg/config"
	"github.com/ev-charging/api/pkg/logger"
)

// @title           EV Charging Stations API
// @version         1.0
// @description     Manage electric-vehicle charging station records behind token authentication.

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting EV Charging Stations API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("enforce_ownership", cfg.EnforceOwnership),
	)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(ctx); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", store.Driver()))

	tokens := auth.NewTokens([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authSvc := services.NewAuthService(store.Users, tokens, 0)
	stationSvc := services.NewStationService(store.Stations, store.Users, cfg.EnforceOwnership)

	router := api.NewRouter(api.Dependencies{
		Env:                cfg.AppEnv,
		HideErrors:         cfg.IsProduction(),
		Tokens:             tokens,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		TrustProxy:         cfg.TrustProxy,
		Store:              store,
		AuthHandler:        handlers.NewAuthHandler(authSvc, cfg.IsProduction()),
		StationsHandler:    handlers.NewStationsHandler(stationSvc, cfg.IsProduction()),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Warn("database close error", zap.Error(err))
	}
}
