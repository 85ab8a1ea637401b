package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/repository"
)

type WrestlerInput struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Alignment string `json:"alignment"`
	Brand     string `json:"brand"`
	ImagePath string `json:"image_path"`
}

func (in WrestlerInput) validate() (domain.Wrestler, error) {
	var (
		w   domain.Wrestler
		err error
	)
	if w.Name, err = domain.Required("name", in.Name); err != nil {
		return w, err
	}
	if strings.Contains(w.Name, domain.TeamSeparator) {
		return w, fmt.Errorf("%w: name %q must not contain %q", domain.ErrInvalidValue, w.Name, domain.TeamSeparator)
	}
	if w.Gender, err = domain.OneOf("gender", in.Gender, domain.Genders); err != nil {
		return w, err
	}
	if w.Alignment, err = domain.OneOf("alignment", in.Alignment, domain.Alignments); err != nil {
		return w, err
	}
	if w.Brand, err = domain.OneOf("brand", in.Brand, domain.Brands); err != nil {
		return w, err
	}
	return w, nil
}

// brandFilter defaults an empty filter to "All".
func brandFilter(brand string) (string, error) {
	if brand == "" {
		return domain.BrandAll, nil
	}
	return domain.OneOf("brand", brand, domain.Brands)
}

type RosterService struct {
	wrestlers     *repository.WrestlerRepository
	records       *repository.RecordRepository
	championships *repository.ChampionshipRepository
	events        Publisher
	logger        zerolog.Logger
}

func NewRosterService(
	wrestlers *repository.WrestlerRepository,
	records *repository.RecordRepository,
	championships *repository.ChampionshipRepository,
	events Publisher,
	logger zerolog.Logger,
) *RosterService {
	return &RosterService{
		wrestlers:     wrestlers,
		records:       records,
		championships: championships,
		events:        events,
		logger:        logger,
	}
}

func (s *RosterService) AddWrestler(ctx context.Context, in WrestlerInput) (*domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	w, err := in.validate()
	if err != nil {
		return nil, err
	}
	w.ImagePath = in.ImagePath

	id, err := s.wrestlers.Create(ctx, &w)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", w.Name).Msg("failed to add wrestler")
		return nil, err
	}
	w.ID = id

	s.logger.Info().Int64("id", id).Str("name", w.Name).Str("brand", w.Brand).Msg("wrestler added")
	s.events.Publish(Event{Type: EventRosterChanged, Data: w})
	return &w, nil
}

// UpdateWrestler keeps the stored portrait unless the input names a new one.
func (s *RosterService) UpdateWrestler(ctx context.Context, id int64, in WrestlerInput) (*domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	w, err := in.validate()
	if err != nil {
		return nil, err
	}
	current, err := s.wrestlers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w.ID = id
	w.Champion = current.Champion
	w.ImagePath = current.ImagePath
	if in.ImagePath != "" {
		w.ImagePath = in.ImagePath
	}

	if err := s.wrestlers.Update(ctx, &w); err != nil {
		return nil, err
	}

	s.events.Publish(Event{Type: EventRosterChanged, Data: w})
	return &w, nil
}

func (s *RosterService) DeleteWrestler(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.wrestlers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("wrestler deleted")
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}

func (s *RosterService) GetWrestler(ctx context.Context, id int64) (*domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.wrestlers.Get(ctx, id)
}

func (s *RosterService) GetWrestlerByName(ctx context.Context, name string) (*domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.wrestlers.GetByName(ctx, name)
}

func (s *RosterService) ListWrestlers(ctx context.Context, brand string) ([]domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	brand, err := brandFilter(brand)
	if err != nil {
		return nil, err
	}
	return s.wrestlers.List(ctx, brand)
}

// Profile gathers a wrestler with their record and the titles naming them as holder.
func (s *RosterService) Profile(ctx context.Context, name string) (*domain.WrestlerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		w      *domain.Wrestler
		record domain.Record
		held   []domain.Championship
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		w, err = s.wrestlers.GetByName(gCtx, name)
		return err
	})
	g.Go(func() error {
		var err error
		record, err = s.records.Get(gCtx, name)
		return err
	})
	g.Go(func() error {
		var err error
		held, err = s.championships.HeldBy(gCtx, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	titles := make([]string, len(held))
	for i, c := range held {
		titles[i] = c.Title
	}
	return &domain.WrestlerProfile{Wrestler: *w, Record: record, Titles: titles}, nil
}

func (s *RosterService) Stats(ctx context.Context, brand string) (domain.RosterStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	brand, err := brandFilter(brand)
	if err != nil {
		return domain.RosterStats{}, err
	}
	return s.wrestlers.Stats(ctx, brand)
}

func (s *RosterService) GetRecord(ctx context.Context, name string) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.records.Get(ctx, name)
}

func (s *RosterService) ListRecords(ctx context.Context) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.records.List(ctx)
}

func (s *RosterService) ResetRecords(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	n, err := s.records.Reset(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("rows", n).Msg("records reset")
	s.events.Publish(Event{Type: EventRosterChanged})
	return n, nil
}

func (s *RosterService) SetPortrait(ctx context.Context, name, key string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.wrestlers.SetImage(ctx, name, key); err != nil {
		return fmt.Errorf("failed to set portrait: %w", err)
	}
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}
