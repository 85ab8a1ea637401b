package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/repository"
)

type StableService struct {
	stables *repository.StableRepository
	events  Publisher
	logger  zerolog.Logger
}

func NewStableService(stables *repository.StableRepository, events Publisher, logger zerolog.Logger) *StableService {
	return &StableService{stables: stables, events: events, logger: logger}
}

// cleanMembers trims names, drops blanks and repeats, and requires at least two left.
func cleanMembers(members []string) ([]string, error) {
	out := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	if len(out) < 2 {
		return nil, domain.ErrTooFewMembers
	}
	return out, nil
}

func (s *StableService) Add(ctx context.Context, name string, members []string) (*domain.Stable, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name, err := domain.Required("stable name", name)
	if err != nil {
		return nil, err
	}
	members, err = cleanMembers(members)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, name); err != nil {
		return nil, err
	}

	st := &domain.Stable{Name: name, Members: members}
	if st.ID, err = s.stables.Create(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info().Str("stable", name).Int("members", len(members)).Msg("stable added")
	s.events.Publish(Event{Type: EventRosterChanged, Data: st})
	return st, nil
}

func (s *StableService) Update(ctx context.Context, oldName, name string, members []string) (*domain.Stable, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name, err := domain.Required("stable name", name)
	if err != nil {
		return nil, err
	}
	members, err = cleanMembers(members)
	if err != nil {
		return nil, err
	}

	current, err := s.stables.GetByName(ctx, oldName)
	if err != nil {
		return nil, err
	}
	if name != oldName {
		if err := s.ensureFree(ctx, name); err != nil {
			return nil, err
		}
	}

	st := &domain.Stable{ID: current.ID, Name: name, Members: members}
	if err := s.stables.Update(ctx, st); err != nil {
		return nil, err
	}
	s.events.Publish(Event{Type: EventRosterChanged, Data: st})
	return st, nil
}

func (s *StableService) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.stables.Delete(ctx, name); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventRosterChanged})
	return nil
}

func (s *StableService) List(ctx context.Context) ([]domain.Stable, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.stables.List(ctx)
}

func (s *StableService) ensureFree(ctx context.Context, name string) error {
	_, err := s.stables.GetByName(ctx, name)
	if err == nil {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateStable, name)
	}
	if domain.IsNotFound(err) {
		return nil
	}
	return err
}
