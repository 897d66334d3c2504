// Command api serves the login API.
//
// @title          Login API
// @version        1.0
// @description    Email and password login issuing signed session tokens.
// @BasePath       /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/loginapi/login-service/internal/api"
	"github.com/loginapi/login-service/internal/core/service"
	"github.com/loginapi/login-service/internal/infrastructure/password"
	"github.com/loginapi/login-service/internal/infrastructure/token"
	"github.com/loginapi/login-service/internal/pkg/config"
	"github.com/loginapi/login-service/pkg/logger"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "login-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("login api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := password.NewBcrypt(cfg.Security.BcryptCost)
	tokens, err := token.NewJWTIssuer(cfg.Token)
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	backends, err := openStores(startCtx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		backends.close(closeCtx, log)
	}()

	if cfg.Seed.Enabled {
		user, err := service.SeedUser(startCtx, backends.users, hasher, cfg.Seed.Email, cfg.Seed.Password)
		if err != nil {
			return err
		}
		log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("demo user ready")
	}

	e := api.NewRouter(api.Dependencies{
		AuthService:        service.NewAuthService(backends.users, hasher, tokens, log),
		Tokens:             tokens,
		Checks:             backends.checks,
		Log:                log,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           e,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Driver).
			Bool("redis_cache", cfg.Redis.Enabled).
			Dur("token_ttl", tokens.TTL()).
			Int("bcrypt_cost", hasher.Cost()).
			Msg("login api listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
