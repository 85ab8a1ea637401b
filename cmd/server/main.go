package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"universe-manager/internal/config"
	"universe-manager/internal/constants"
	fxmodules "universe-manager/internal/fx"
	"universe-manager/internal/server"
	"universe-manager/internal/settings"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	srv *server.Server,
	hub *server.Hub,
	store *settings.Store,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           c.Handler(srv.Routes()),
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	var (
		cancel context.CancelFunc
		group  *errgroup.Group
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			group, ctx = errgroup.WithContext(ctx)

			group.Go(func() error { return hub.Run(ctx) })
			group.Go(func() error { return store.Watch(ctx) })
			group.Go(func() error {
				logger.Info().Str("addr", httpServer.Addr).Msg("server starting")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return err
				}
				return nil
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, stop := context.WithTimeout(ctx, constants.ShutdownTimeout)
			defer stop()

			shutdownErr := httpServer.Shutdown(shutdownCtx)
			if shutdownErr != nil {
				logger.Error().Err(shutdownErr).Msg("server shutdown failed")
			}
			cancel()
			if err := group.Wait(); err != nil {
				logger.Warn().Err(err).Msg("background worker exited with error")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			if shutdownErr != nil {
				return shutdownErr
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
