package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

const memberSeparator = ", "

type StableRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStableRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *StableRepository {
	return &StableRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *StableRepository) Create(ctx context.Context, s *domain.Stable) (int64, error) {
	id, err := r.queries.CreateStable(ctx, db.CreateStableParams{
		StableName: s.Name,
		Members:    strings.Join(s.Members, memberSeparator),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create stable %q: %w", s.Name, err)
	}
	return id, nil
}

func (r *StableRepository) GetByName(ctx context.Context, name string) (*domain.Stable, error) {
	row, err := r.queries.GetStableByName(ctx, name)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %q", domain.ErrStableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stable %q: %w", name, err)
	}
	s := toStable(row)
	return &s, nil
}

func (r *StableRepository) List(ctx context.Context) ([]domain.Stable, error) {
	rows, err := r.queries.ListStables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stables: %w", err)
	}
	result := make([]domain.Stable, len(rows))
	for i, row := range rows {
		result[i] = toStable(row)
	}
	slices.SortFunc(result, func(a, b domain.Stable) int {
		return domain.CompareNames(a.Name, b.Name)
	})
	return result, nil
}

func (r *StableRepository) Update(ctx context.Context, s *domain.Stable) error {
	n, err := r.queries.UpdateStable(ctx, db.UpdateStableParams{
		StableName: s.Name,
		Members:    strings.Join(s.Members, memberSeparator),
		ID:         s.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update stable %d: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrStableNotFound, s.ID)
	}
	return nil
}

func (r *StableRepository) Delete(ctx context.Context, name string) error {
	n, err := r.queries.DeleteStable(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete stable %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrStableNotFound, name)
	}
	return nil
}

func toStable(row db.Stable) domain.Stable {
	var members []string
	for _, m := range strings.Split(row.Members, ",") {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	return domain.Stable{
		ID:      row.ID,
		Name:    row.StableName,
		Members: members,
	}
}
