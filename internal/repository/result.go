package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

// Result is a resolved match ready to be written.
type Result struct {
	Date         time.Time
	MatchNumber  int
	WinnerLabel  string
	Winners      []string
	Losers       []string
	Style        string
	Championship string
}

type ResultRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewResultRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ResultRepository {
	return &ResultRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Record applies win/loss counters, the title change and the history row as one transaction.
// Only the first winner becomes champion, even for multi-member teams.
func (r *ResultRepository) Record(ctx context.Context, res Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for _, name := range res.Winners {
		if err := qtx.EnsureRecord(ctx, name); err != nil {
			return fmt.Errorf("failed to create record for %q: %w", name, err)
		}
		if err := qtx.AddWin(ctx, name); err != nil {
			return fmt.Errorf("failed to add win for %q: %w", name, err)
		}
	}
	for _, name := range res.Losers {
		if err := qtx.EnsureRecord(ctx, name); err != nil {
			return fmt.Errorf("failed to create record for %q: %w", name, err)
		}
		if err := qtx.AddLoss(ctx, name); err != nil {
			return fmt.Errorf("failed to add loss for %q: %w", name, err)
		}
	}

	if res.Championship != "" && len(res.Winners) > 0 {
		n, err := qtx.SetChampionshipHolder(ctx, db.SetChampionshipHolderParams{
			CurrentHolder: res.Winners[0],
			WonOn:         domain.FormatDate(res.Date),
			Title:         res.Championship,
		})
		if err != nil {
			return fmt.Errorf("failed to crown %q: %w", res.Winners[0], err)
		}
		if n == 0 {
			r.logger.Warn().Str("title", res.Championship).Msg("championship no longer exists, holder not updated")
		}
	}

	err = qtx.CreateMatchHistory(ctx, db.CreateMatchHistoryParams{
		CardDate:     domain.FormatDate(res.Date),
		MatchNumber:  int64(res.MatchNumber),
		Winner:       res.WinnerLabel,
		Losers:       strings.Join(res.Losers, ","),
		Style:        res.Style,
		Championship: res.Championship,
	})
	if err != nil {
		return fmt.Errorf("failed to append match history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result: %w", err)
	}

	r.logger.Info().
		Str("date", domain.FormatDate(res.Date)).
		Int("match_number", res.MatchNumber).
		Str("winner", res.WinnerLabel).
		Strs("losers", res.Losers).
		Str("championship", res.Championship).
		Msg("result recorded")
	return nil
}
