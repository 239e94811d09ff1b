// Command api serves the class scheduler HTTP API.
//
// @title                       Class Scheduler API
// @version                     1.0
// @description                 Registration, sign-in and role-gated class scheduling.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classroom/scheduler/internal/api"
	"github.com/classroom/scheduler/internal/core/ports"
	"github.com/classroom/scheduler/internal/core/service"
	"github.com/classroom/scheduler/internal/infrastructure/config"
	"github.com/classroom/scheduler/internal/infrastructure/db/redis"
	"github.com/classroom/scheduler/internal/infrastructure/oauth"
	"github.com/classroom/scheduler/internal/infrastructure/store"
	"github.com/classroom/scheduler/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "scheduler-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	st, err := store.Open(ctx, store.Config{
		URL:           cfg.Database.ResolveURL(),
		MongoDatabase: cfg.Database.MongoDatabase,
	}, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	var revoker ports.TokenRevoker = service.NoopRevoker{}
	if rdb != nil {
		defer rdb.Close()
		revoker = redis.NewRevocationList(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, logout will not revoke tokens server-side")
	}

	// --- Core ---
	demo := cfg.DemoConfig()
	if demo.Enabled {
		log.Warn().Str("email", demo.Email).Str("role", demo.Role.String()).Msg("demo login enabled")
	}
	strategy := service.NewRefreshStrategy(demo, st.Users, st.Configured())
	sessions := service.NewSessionIssuer(cfg.JWTSecret, cfg.TokenTTL, strategy, revoker, logger.Component("session"))
	authService := service.NewAuthService(
		st.Users,
		service.NewAuthenticator(st.Users, demo),
		sessions,
		demo,
		cfg.BcryptCost,
		logger.Component("auth"),
	)

	deps := api.Dependencies{
		Logger:        logger.Component("http"),
		Auth:          authService,
		Sessions:      sessions,
		Classes:       service.NewClassService(st.Classes, logger.Component("classes")),
		Profiles:      service.NewProfileService(st.Users, logger.Component("profile")),
		Users:         service.NewUserService(st.Users, logger.Component("users")),
		Backend:       st.Backend,
		Store:         st,
		Redis:         rdb,
		SecureCookies: !cfg.IsDevelopment(),
	}
	if cfg.Google.Enabled() {
		deps.OAuth = oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		})
	}

	e := api.NewRouter(deps)

	// --- Serve ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", st.Backend).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
