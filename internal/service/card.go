package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/repository"
)

// UnresolvedWinner is shown for matches without a recorded result.
const UnresolvedWinner = "TBD"

type CardInput struct {
	Name    string
	Brand   string
	Date    time.Time
	Matches []domain.BookedMatch
}

type CardService struct {
	cards   *repository.CardRepository
	history *repository.HistoryRepository
	events  Publisher
	logger  zerolog.Logger
}

func NewCardService(cards *repository.CardRepository, history *repository.HistoryRepository, events Publisher, logger zerolog.Logger) *CardService {
	return &CardService{cards: cards, history: history, events: events, logger: logger}
}

// DefaultCardName suggests "<brand> - January 02 2006" for a card on date.
func DefaultCardName(brand string, date time.Time) string {
	return fmt.Sprintf("%s - %s", brand, date.Format("January 02 2006"))
}

// Save archives a card. Results are not recorded. A blank name falls back to DefaultCardName.
func (s *CardService) Save(ctx context.Context, in CardInput) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	brand, err := domain.OneOf("brand", in.Brand, domain.Brands)
	if err != nil {
		return 0, err
	}
	if in.Date.IsZero() {
		return 0, fmt.Errorf("%w: card date", domain.ErrMissingField)
	}
	date := domain.Day(in.Date)
	name, err := domain.Required("card name", in.Name)
	if err != nil {
		name = DefaultCardName(brand, date)
	}
	for i, m := range in.Matches {
		if err := m.Validate(); err != nil {
			return 0, fmt.Errorf("match %d: %w", i+1, err)
		}
	}

	card := &domain.Card{Name: name, Brand: brand, Date: date, Matches: in.Matches}
	id, err := s.cards.Create(ctx, card)
	if err != nil {
		return 0, err
	}

	s.events.Publish(Event{Type: EventCardSaved, Data: domain.CardSummary{ID: id, Name: name}})
	return id, nil
}

func (s *CardService) Get(ctx context.Context, id int64) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.cards.Get(ctx, id)
}

func (s *CardService) ListForDate(ctx context.Context, date time.Time) ([]domain.CardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.cards.ListByDate(ctx, date)
}

func (s *CardService) Dates(ctx context.Context) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.cards.Dates(ctx)
}

// Delete removes the card only. History rows for its date stay.
func (s *CardService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.cards.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("card deleted")
	s.events.Publish(Event{Type: EventCardDeleted, Data: id})
	return nil
}

// Details joins a card with the results recorded on its date. When several rows share a
// match number the first one recorded wins.
func (s *CardService) Details(ctx context.Context, id int64) (*domain.CardDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.history.ListByDate(ctx, card.Date)
	if err != nil {
		return nil, err
	}

	results := make(map[int]domain.MatchHistoryEntry, len(rows))
	for _, row := range rows {
		if _, seen := results[row.MatchNumber]; !seen {
			results[row.MatchNumber] = row
		}
	}

	details := &domain.CardDetails{
		ID:      card.ID,
		Name:    card.Name,
		Brand:   card.Brand,
		Date:    card.Date,
		Matches: make([]domain.MatchDetail, len(card.Matches)),
	}
	for i, m := range card.Matches {
		m = m.Clone()
		d := domain.MatchDetail{
			Number:       i + 1,
			Style:        m.Style,
			Championship: m.Championship,
			Teams:        m.Teams,
			Winner:       UnresolvedWinner,
		}
		if row, ok := results[d.Number]; ok {
			d.Winner = row.Winner
			d.Losers = row.Losers
		}
		details.Matches[i] = d
	}
	return details, nil
}

func (s *CardService) History(ctx context.Context, date time.Time) ([]domain.MatchHistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.history.ListByDate(ctx, domain.Day(date))
}

func (s *CardService) ResetHistory(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.history.Reset(ctx)
}
