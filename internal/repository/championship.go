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

type ChampionshipRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewChampionshipRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ChampionshipRepository {
	return &ChampionshipRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ChampionshipRepository) Create(ctx context.Context, c *domain.Championship) (int64, error) {
	id, err := r.queries.CreateChampionship(ctx, db.CreateChampionshipParams{
		Title:  c.Title,
		Brand:  c.Brand,
		Type:   c.Type,
		Gender: c.Gender,
	})
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%w: %q", domain.ErrDuplicateChampionship, c.Title)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create championship %q: %w", c.Title, err)
	}
	return id, nil
}

func (r *ChampionshipRepository) GetByTitle(ctx context.Context, title string) (*domain.Championship, error) {
	row, err := r.queries.GetChampionshipByTitle(ctx, title)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %q", domain.ErrChampionshipNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get championship %q: %w", title, err)
	}
	c := r.toChampionship(row)
	return &c, nil
}

func (r *ChampionshipRepository) List(ctx context.Context, brand string) ([]domain.Championship, error) {
	rows, err := r.queries.ListChampionships(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	return r.sorted(rows), nil
}

// HeldBy lists titles whose holder text contains name.
func (r *ChampionshipRepository) HeldBy(ctx context.Context, name string) ([]domain.Championship, error) {
	rows, err := r.queries.ListChampionshipsHeldBy(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles held by %q: %w", name, err)
	}
	return r.sorted(rows), nil
}

func (r *ChampionshipRepository) Rename(ctx context.Context, oldTitle, newTitle string) error {
	n, err := r.queries.RenameChampionship(ctx, db.RenameChampionshipParams{Title: newTitle, Title_2: oldTitle})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateChampionship, newTitle)
	}
	if err != nil {
		return fmt.Errorf("failed to rename championship %q: %w", oldTitle, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrChampionshipNotFound, oldTitle)
	}
	return nil
}

// SetHolder stores holder text and the date it was won. An empty holder with a nil date vacates the title.
func (r *ChampionshipRepository) SetHolder(ctx context.Context, title, holder string, wonOn *time.Time) error {
	n, err := r.queries.SetChampionshipHolder(ctx, db.SetChampionshipHolderParams{
		CurrentHolder: holder,
		WonOn:         formatOptionalDate(wonOn),
		Title:         title,
	})
	if err != nil {
		return fmt.Errorf("failed to set holder of %q: %w", title, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrChampionshipNotFound, title)
	}
	return nil
}

func (r *ChampionshipRepository) Delete(ctx context.Context, title string) error {
	n, err := r.queries.DeleteChampionship(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to delete championship %q: %w", title, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrChampionshipNotFound, title)
	}
	return nil
}

func (r *ChampionshipRepository) sorted(rows []db.Championship) []domain.Championship {
	result := make([]domain.Championship, len(rows))
	for i, row := range rows {
		result[i] = r.toChampionship(row)
	}
	slices.SortFunc(result, func(a, b domain.Championship) int {
		return domain.CompareNames(a.Title, b.Title)
	})
	return result
}

func (r *ChampionshipRepository) toChampionship(row db.Championship) domain.Championship {
	c := domain.Championship{
		ID:            row.ID,
		Title:         row.Title,
		Brand:         row.Brand,
		Type:          row.Type,
		Gender:        row.Gender,
		CurrentHolder: row.CurrentHolder,
	}
	if row.WonOn != "" {
		if t, err := domain.ParseDate(row.WonOn); err == nil {
			c.WonOn = &t
		} else {
			r.logger.Warn().Str("title", row.Title).Str("won_on", row.WonOn).Msg("unreadable won-on date")
		}
	}
	return c
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return domain.FormatDate(*t)
}
