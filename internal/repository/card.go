package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

type CardRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCardRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CardRepository {
	return &CardRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (int64, error) {
	data, err := domain.EncodeMatches(card.Matches)
	if err != nil {
		return 0, err
	}

	id, err := r.queries.CreateCard(ctx, db.CreateCardParams{
		Name:     card.Name,
		Brand:    card.Brand,
		CardDate: domain.FormatDate(card.Date),
		CardData: data,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save card %q: %w", card.Name, err)
	}

	r.logger.Info().
		Int64("id", id).
		Str("name", card.Name).
		Str("date", domain.FormatDate(card.Date)).
		Int("matches", len(card.Matches)).
		Msg("card saved")
	return id, nil
}

// Get loads a card and decodes its match list. Stored data that fails validation is an error.
func (r *CardRepository) Get(ctx context.Context, id int64) (*domain.Card, error) {
	row, err := r.queries.GetCard(ctx, id)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrCardNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}

	date, err := domain.ParseDate(row.CardDate)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", id, err)
	}
	matches, err := domain.DecodeMatches(row.CardData)
	if err != nil {
		r.logger.Warn().Err(err).Int64("id", id).Msg("stored card data is malformed")
		return nil, fmt.Errorf("card %d: %w", id, err)
	}

	return &domain.Card{
		ID:      row.ID,
		Name:    row.Name,
		Brand:   row.Brand,
		Date:    date,
		Matches: matches,
	}, nil
}

func (r *CardRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.CardSummary, error) {
	rows, err := r.queries.ListCardsByDate(ctx, domain.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	result := make([]domain.CardSummary, len(rows))
	for i, row := range rows {
		result[i] = domain.CardSummary{ID: row.ID, Name: row.Name}
	}
	slices.SortFunc(result, func(a, b domain.CardSummary) int {
		return domain.CompareNames(a.Name, b.Name)
	})
	return result, nil
}

// Dates lists every calendar day that has at least one saved card.
func (r *CardRepository) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.queries.ListCardDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list card dates: %w", err)
	}
	result := make([]time.Time, 0, len(rows))
	for _, s := range rows {
		t, err := domain.ParseDate(s)
		if err != nil {
			r.logger.Warn().Str("card_date", s).Msg("skipping unreadable card date")
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteCard(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCardNotFound, id)
	}
	return nil
}
