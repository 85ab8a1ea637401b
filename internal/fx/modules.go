package fx

import (
	"context"
	"database/sql"

	"universe-manager/internal/api"
	"universe-manager/internal/config"
	"universe-manager/internal/database"
	"universe-manager/internal/db"
	"universe-manager/internal/logger"
	"universe-manager/internal/metrics"
	"universe-manager/internal/portrait"
	"universe-manager/internal/repository"
	"universe-manager/internal/server"
	"universe-manager/internal/service"
	"universe-manager/internal/settings"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideSettings(cfg *config.Config, logger zerolog.Logger) (*settings.Store, error) {
	return settings.Open(cfg.SettingsPath, logger)
}

// ProvidePortraitStore builds the configured backend. Construction only resolves credentials, so a
// background context is enough.
func ProvidePortraitStore(cfg *config.Config, logger zerolog.Logger) (portrait.Store, error) {
	store, err := portrait.New(context.Background(), cfg.Portrait)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", string(store.Driver())).Msg("portrait store ready")
	return store, nil
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(ProvideSettings),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewWrestlerRepository),
	fx.Provide(repository.NewRecordRepository),
	fx.Provide(repository.NewChampionshipRepository),
	fx.Provide(repository.NewStableRepository),
	fx.Provide(repository.NewCardRepository),
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewResultRepository),
	// portraits
	fx.Provide(ProvidePortraitStore),
	fx.Provide(fx.Annotate(api.NewPortraitFetcher, fx.As(new(service.ImageFetcher)))),
	// events
	fx.Provide(server.NewHub),
	fx.Provide(func(h *server.Hub) service.Publisher { return h }),
	// svc
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewChampionshipService),
	fx.Provide(service.NewStableService),
	fx.Provide(service.NewCardService),
	fx.Provide(service.NewSettingsService),
	fx.Provide(service.NewBookingService),
	fx.Provide(service.NewPortraitService),
	// server
	fx.Provide(server.New),
)
