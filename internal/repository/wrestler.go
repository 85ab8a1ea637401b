package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

type WrestlerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewWrestlerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *WrestlerRepository {
	return &WrestlerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *WrestlerRepository) Create(ctx context.Context, w *domain.Wrestler) (int64, error) {
	id, err := r.queries.CreateWrestler(ctx, db.CreateWrestlerParams{
		Name:      w.Name,
		Gender:    w.Gender,
		Alignment: w.Alignment,
		Brand:     w.Brand,
		ImagePath: w.ImagePath,
	})
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%w: %q", domain.ErrDuplicateWrestler, w.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create wrestler %q: %w", w.Name, err)
	}

	r.logger.Debug().Int64("id", id).Str("name", w.Name).Msg("wrestler created")
	return id, nil
}

func (r *WrestlerRepository) Get(ctx context.Context, id int64) (*domain.Wrestler, error) {
	row, err := r.queries.GetWrestler(ctx, id)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrWrestlerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wrestler %d: %w", id, err)
	}
	w := toWrestler(row)
	return &w, nil
}

func (r *WrestlerRepository) GetByName(ctx context.Context, name string) (*domain.Wrestler, error) {
	row, err := r.queries.GetWrestlerByName(ctx, name)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %q", domain.ErrWrestlerNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wrestler %q: %w", name, err)
	}
	w := toWrestler(row)
	return &w, nil
}

// List returns the wrestlers admitted by brand ("All" for everyone) in roster sort order.
func (r *WrestlerRepository) List(ctx context.Context, brand string) ([]domain.Wrestler, error) {
	rows, err := r.queries.ListWrestlers(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to list wrestlers: %w", err)
	}

	result := make([]domain.Wrestler, len(rows))
	for i, row := range rows {
		result[i] = toWrestler(row)
	}
	slices.SortFunc(result, func(a, b domain.Wrestler) int {
		return domain.CompareNames(a.Name, b.Name)
	})
	return result, nil
}

// Update rewrites the wrestler's attributes. A rename moves the record row along in the same transaction.
func (r *WrestlerRepository) Update(ctx context.Context, w *domain.Wrestler) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	current, err := qtx.GetWrestler(ctx, w.ID)
	if isNoRows(err) {
		return fmt.Errorf("%w: id %d", domain.ErrWrestlerNotFound, w.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get wrestler %d: %w", w.ID, err)
	}

	_, err = qtx.UpdateWrestler(ctx, db.UpdateWrestlerParams{
		Name:      w.Name,
		Gender:    w.Gender,
		Alignment: w.Alignment,
		Brand:     w.Brand,
		ImagePath: w.ImagePath,
		ID:        w.ID,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateWrestler, w.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update wrestler %d: %w", w.ID, err)
	}

	if current.Name != w.Name {
		err = qtx.RenameRecord(ctx, db.RenameRecordParams{Wrestler: w.Name, Wrestler_2: current.Name})
		if err != nil {
			return fmt.Errorf("failed to move record of %q: %w", current.Name, err)
		}
		r.logger.Info().
			Str("from", current.Name).
			Str("to", w.Name).
			Msg("wrestler renamed")
	}

	return tx.Commit()
}

func (r *WrestlerRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteWrestler(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete wrestler %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrWrestlerNotFound, id)
	}
	return nil
}

func (r *WrestlerRepository) SetImage(ctx context.Context, name, key string) error {
	n, err := r.queries.SetWrestlerImage(ctx, db.SetWrestlerImageParams{ImagePath: key, Name: name})
	if err != nil {
		return fmt.Errorf("failed to set image of %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrWrestlerNotFound, name)
	}
	return nil
}

func (r *WrestlerRepository) Stats(ctx context.Context, brand string) (domain.RosterStats, error) {
	row, err := r.queries.RosterStats(ctx, brand)
	if err != nil {
		return domain.RosterStats{}, fmt.Errorf("failed to count roster: %w", err)
	}
	return domain.RosterStats{
		Brand:  brand,
		Total:  int(row.Total),
		Face:   int(row.Face),
		Heel:   int(row.Heel),
		Male:   int(row.Male),
		Female: int(row.Female),
	}, nil
}

func toWrestler(row db.Wrestler) domain.Wrestler {
	return domain.Wrestler{
		ID:        row.ID,
		Name:      row.Name,
		Gender:    row.Gender,
		Alignment: row.Alignment,
		Brand:     row.Brand,
		Champion:  row.Champion,
		ImagePath: row.ImagePath,
	}
}
