package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"universe-manager/internal/booking"
	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/metrics"
	"universe-manager/internal/repository"
	"universe-manager/internal/settings"
)

// BookingService owns the open booking sessions. Every session operation runs under one
// mutex against a roster snapshot read for that call.
type BookingService struct {
	wrestlers     *repository.WrestlerRepository
	championships *repository.ChampionshipRepository
	results       *repository.ResultRepository
	cards         *CardService
	settings      *settings.Store
	metrics       *metrics.Metrics
	events        Publisher
	logger        zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*booking.Session
}

func NewBookingService(
	wrestlers *repository.WrestlerRepository,
	championships *repository.ChampionshipRepository,
	results *repository.ResultRepository,
	cards *CardService,
	store *settings.Store,
	m *metrics.Metrics,
	events Publisher,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		wrestlers:     wrestlers,
		championships: championships,
		results:       results,
		cards:         cards,
		settings:      store,
		metrics:       m,
		events:        events,
		logger:        logger,
		sessions:      make(map[string]*booking.Session),
	}
}

// roster snapshots wrestlers and titles for one engine call.
func (s *BookingService) roster(ctx context.Context) (*booking.Roster, error) {
	var (
		wrestlers []domain.Wrestler
		titles    []domain.Championship
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wrestlers, err = s.wrestlers.List(gCtx, domain.BrandAll)
		return err
	})
	g.Go(func() error {
		var err error
		titles, err = s.championships.List(gCtx, domain.BrandAll)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	entrants := make([]booking.Entrant, len(wrestlers))
	for i, w := range wrestlers {
		entrants[i] = toEntrant(w)
	}
	ts := make([]booking.Title, len(titles))
	for i, c := range titles {
		ts[i] = toTitle(c)
	}
	return booking.NewRoster(entrants, ts), nil
}

func (s *BookingService) CreateSession(ctx context.Context) (string, booking.View, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := gonanoid.New(constants.SessionIDLength)
	if err != nil {
		return "", booking.View{}, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.roster(ctx)
	if err != nil {
		return "", booking.View{}, err
	}
	sess := booking.NewSession(r)
	s.sessions[id] = sess
	s.metrics.ActiveSessions.Inc()

	s.logger.Info().Str("session", id).Int("pool", len(sess.Pool())).Msg("booking session opened")
	return id, sess.Snapshot(), nil
}

func (s *BookingService) Session(id string) (booking.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return booking.View{}, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	return sess.Snapshot(), nil
}

func (s *BookingService) CloseSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	s.metrics.ActiveSessions.Dec()
	s.events.Publish(Event{Type: EventSessionClosed, Session: id})
	return nil
}

// apply runs fn on the session under the lock and announces the new state. A roster snapshot
// is read only when fn needs one.
func (s *BookingService) apply(ctx context.Context, id string, needRoster bool, fn func(*booking.Session, *booking.Roster) error) (booking.View, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return booking.View{}, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}

	var r *booking.Roster
	if needRoster {
		var err error
		if r, err = s.roster(ctx); err != nil {
			return booking.View{}, err
		}
	}
	if err := fn(sess, r); err != nil {
		return booking.View{}, err
	}

	view := sess.Snapshot()
	s.events.Publish(Event{Type: EventSessionUpdated, Session: id, Data: view})
	return view, nil
}

func (s *BookingService) SetBrand(ctx context.Context, id, brand string) (booking.View, error) {
	brand, err := domain.OneOf("brand", brand, domain.Brands)
	if err != nil {
		return booking.View{}, err
	}
	return s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		return sess.SetBrandFilter(r, brand)
	})
}

func (s *BookingService) SetChampionship(ctx context.Context, id, title string) (booking.View, error) {
	return s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		return sess.SetChampionship(r, title)
	})
}

func (s *BookingService) SetFormat(ctx context.Context, id string, total int, shape booking.Shape) (booking.View, error) {
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		return sess.SelectFormat(total, shape)
	})
}

// SetStyle accepts a configured match style, or "" for none.
func (s *BookingService) SetStyle(ctx context.Context, id, style string) (booking.View, error) {
	if style != "" && !s.settings.HasStyle(style) {
		return booking.View{}, fmt.Errorf("%w: %q", domain.ErrStyleNotFound, style)
	}
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		sess.SetStyle(style)
		return nil
	})
}

func (s *BookingService) Assign(ctx context.Context, id string, slot int, name string) (booking.View, error) {
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		return sess.AssignParticipant(slot, name)
	})
}

func (s *BookingService) ClearSlot(ctx context.Context, id string, slot int) (booking.View, error) {
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		return sess.ClearSlot(slot)
	})
}

func (s *BookingService) Commit(ctx context.Context, id string) (booking.View, error) {
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		m, err := sess.CommitMatch()
		if err != nil {
			return err
		}
		s.metrics.MatchesBooked.Inc()
		s.events.Publish(Event{Type: EventMatchCommitted, Session: id, Data: m})
		s.logger.Debug().
			Str("session", id).
			Strs("teams", m.TeamLabels()).
			Str("style", m.Style).
			Msg("match committed")
		return nil
	})
}

func (s *BookingService) Move(ctx context.Context, id string, index, direction int) (booking.View, error) {
	return s.apply(ctx, id, false, func(sess *booking.Session, _ *booking.Roster) error {
		return sess.ReorderMatch(index, direction)
	})
}

func (s *BookingService) Remove(ctx context.Context, id string, index int) (booking.View, error) {
	return s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		_, err := sess.RemoveMatch(r, index)
		return err
	})
}

func (s *BookingService) ClearCard(ctx context.Context, id string) (booking.View, error) {
	return s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		sess.ClearCard(r)
		return nil
	})
}

// RecordResult persists the outcome of match index and only then marks it resolved in the session.
// A zero date records the result for today.
func (s *BookingService) RecordResult(ctx context.Context, id string, index int, winner string, date time.Time) (booking.View, error) {
	if date.IsZero() {
		date = time.Now()
	}
	date = domain.Day(date)

	return s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		o, err := sess.PrepareResult(index, winner)
		if err != nil {
			return err
		}

		err = s.results.Record(ctx, repository.Result{
			Date:         date,
			MatchNumber:  o.MatchNumber,
			WinnerLabel:  o.WinnerLabel,
			Winners:      o.Winners,
			Losers:       o.Losers,
			Style:        o.Style,
			Championship: o.Championship,
		})
		if err != nil {
			s.logger.Error().Err(err).Str("session", id).Int("match_number", o.MatchNumber).Msg("failed to record result")
			return err
		}
		if err := sess.CompleteResult(r, o); err != nil {
			return err
		}

		s.metrics.ObserveResult(o.Championship)
		s.events.Publish(Event{Type: EventResultRecorded, Session: id, Data: o})
		s.logger.Info().
			Str("session", id).
			Int("match_number", o.MatchNumber).
			Str("winner", o.WinnerLabel).
			Str("title", o.Championship).
			Msg("result recorded")
		return nil
	})
}

// SaveCard archives the session's booked matches under its brand filter.
func (s *BookingService) SaveCard(ctx context.Context, id, name string, date time.Time) (int64, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	var in CardInput
	if ok {
		in = CardInput{Name: name, Brand: sess.Brand(), Date: date, Matches: sess.Matches()}
	}
	s.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}

	cardID, err := s.cards.Save(ctx, in)
	if err != nil {
		return 0, err
	}
	s.metrics.CardsSaved.Inc()
	return cardID, nil
}

// LoadCard replaces the session's booked matches with a saved card's.
func (s *BookingService) LoadCard(ctx context.Context, id string, cardID int64) (booking.View, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return booking.View{}, err
	}
	view, err := s.apply(ctx, id, true, func(sess *booking.Session, r *booking.Roster) error {
		return sess.ReplaceBooked(r, card.Matches)
	})
	if err != nil {
		return booking.View{}, err
	}
	s.events.Publish(Event{Type: EventCardLoaded, Session: id, Data: domain.CardSummary{ID: card.ID, Name: card.Name}})
	return view, nil
}
