package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"universe-manager/internal/booking"
	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/repository"
)

type ChampionshipInput struct {
	Title  string `json:"title"`
	Brand  string `json:"brand"`
	Type   string `json:"type"`
	Gender string `json:"gender"`
}

type ChampionshipService struct {
	championships *repository.ChampionshipRepository
	wrestlers     *repository.WrestlerRepository
	events        Publisher
	logger        zerolog.Logger
}

func NewChampionshipService(
	championships *repository.ChampionshipRepository,
	wrestlers *repository.WrestlerRepository,
	events Publisher,
	logger zerolog.Logger,
) *ChampionshipService {
	return &ChampionshipService{
		championships: championships,
		wrestlers:     wrestlers,
		events:        events,
		logger:        logger,
	}
}

func (s *ChampionshipService) Add(ctx context.Context, in ChampionshipInput) (*domain.Championship, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		c   domain.Championship
		err error
	)
	if c.Title, err = domain.Required("title", in.Title); err != nil {
		return nil, err
	}
	if c.Brand, err = domain.OneOf("brand", in.Brand, domain.Brands); err != nil {
		return nil, err
	}
	if c.Type, err = domain.OneOf("type", in.Type, domain.TitleTypes); err != nil {
		return nil, err
	}
	if c.Gender, err = domain.OneOf("gender", in.Gender, domain.Genders); err != nil {
		return nil, err
	}

	if c.ID, err = s.championships.Create(ctx, &c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("title", c.Title).Str("brand", c.Brand).Msg("championship added")
	s.events.Publish(Event{Type: EventRosterChanged, Data: c})
	return &c, nil
}

func (s *ChampionshipService) Rename(ctx context.Context, oldTitle, newTitle string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	newTitle, err := domain.Required("title", newTitle)
	if err != nil {
		return err
	}
	if newTitle == oldTitle {
		_, err := s.championships.GetByTitle(ctx, oldTitle)
		return err
	}
	if err := s.championships.Rename(ctx, oldTitle, newTitle); err != nil {
		return err
	}

	s.logger.Info().Str("from", oldTitle).Str("to", newTitle).Msg("championship renamed")
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}

func (s *ChampionshipService) Delete(ctx context.Context, title string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.championships.Delete(ctx, title); err != nil {
		return err
	}
	s.logger.Info().Str("title", title).Msg("championship deleted")
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}

func (s *ChampionshipService) List(ctx context.Context, brand string) ([]domain.Championship, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	brand, err := brandFilter(brand)
	if err != nil {
		return nil, err
	}
	return s.championships.List(ctx, brand)
}

func (s *ChampionshipService) Get(ctx context.Context, title string) (*domain.Championship, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.championships.GetByTitle(ctx, title)
}

// Eligible lists wrestlers who may hold or contend for title, in roster order.
func (s *ChampionshipService) Eligible(ctx context.Context, title string) ([]domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	c, err := s.championships.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	all, err := s.wrestlers.List(ctx, domain.BrandAll)
	if err != nil {
		return nil, err
	}

	t := toTitle(*c)
	out := make([]domain.Wrestler, 0, len(all))
	for _, w := range all {
		if t.Eligible(toEntrant(w)) {
			out = append(out, w)
		}
	}
	return out, nil
}

// AssignHolder crowns names as the new holders from date on. Every name must be an eligible roster member.
func (s *ChampionshipService) AssignHolder(ctx context.Context, title string, names []string, date time.Time) (*domain.Championship, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	c, err := s.championships.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	holders := make([]string, 0, len(names))
	for _, n := range names {
		n, err := domain.Required("holder", n)
		if err != nil {
			return nil, err
		}
		holders = append(holders, n)
	}
	if len(holders) == 0 {
		return nil, fmt.Errorf("%w: holder", domain.ErrMissingField)
	}

	t := toTitle(*c)
	for _, n := range holders {
		w, err := s.wrestlers.GetByName(ctx, n)
		if domain.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %q is not on the roster", domain.ErrIneligibleHolder, n)
		}
		if err != nil {
			return nil, err
		}
		if !t.Eligible(toEntrant(*w)) {
			return nil, fmt.Errorf("%w: %q for %q", domain.ErrIneligibleHolder, n, title)
		}
	}

	day := domain.Day(date)
	c.CurrentHolder = domain.TeamLabel(holders)
	c.WonOn = &day
	if err := s.championships.SetHolder(ctx, title, c.CurrentHolder, c.WonOn); err != nil {
		return nil, err
	}

	s.logger.Info().Str("title", title).Str("holder", c.CurrentHolder).Msg("championship holder assigned")
	s.events.Publish(Event{Type: EventRosterChanged, Data: c})
	return c, nil
}

func (s *ChampionshipService) Vacate(ctx context.Context, title string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.championships.SetHolder(ctx, title, "", nil); err != nil {
		return err
	}
	s.logger.Info().Str("title", title).Msg("championship vacated")
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}

func toEntrant(w domain.Wrestler) booking.Entrant {
	return booking.Entrant{Name: w.Name, Brand: w.Brand, Gender: w.Gender}
}

func toTitle(c domain.Championship) booking.Title {
	return booking.Title{Title: c.Title, Brand: c.Brand, Gender: c.Gender, Holder: c.CurrentHolder}
}
