package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

type HistoryRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewHistoryRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ListByDate returns the day's results ordered by match number, oldest entry first on ties.
func (r *HistoryRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.MatchHistoryEntry, error) {
	rows, err := r.queries.ListMatchHistoryByDate(ctx, domain.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}

	result := make([]domain.MatchHistoryEntry, len(rows))
	for i, row := range rows {
		result[i] = domain.MatchHistoryEntry{
			ID:           row.ID,
			Date:         date,
			MatchNumber:  int(row.MatchNumber),
			Winner:       row.Winner,
			Losers:       row.Losers,
			Style:        row.Style,
			Championship: row.Championship,
		}
	}
	return result, nil
}

func (r *HistoryRepository) Reset(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteAllMatchHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset match history: %w", err)
	}
	r.logger.Info().Int64("rows", n).Msg("match history reset")
	return n, nil
}
