package repository

import (
	"context"
	"database/sql"
	"fmt"

	"universe-manager/internal/db"
	"universe-manager/internal/domain"

	"github.com/rs/zerolog"
)

type RecordRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRecordRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RecordRepository {
	return &RecordRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Get returns the record for name, or 0/0 when no result has been recorded yet.
func (r *RecordRepository) Get(ctx context.Context, name string) (domain.Record, error) {
	row, err := r.queries.GetRecord(ctx, name)
	if isNoRows(err) {
		return domain.Record{Wrestler: name}, nil
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to get record of %q: %w", name, err)
	}
	return toRecord(row), nil
}

func (r *RecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.queries.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	result := make([]domain.Record, len(rows))
	for i, row := range rows {
		result[i] = toRecord(row)
	}
	return result, nil
}

func (r *RecordRepository) Reset(ctx context.Context) (int64, error) {
	n, err := r.queries.ResetRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset records: %w", err)
	}
	r.logger.Info().Int64("rows", n).Msg("records reset")
	return n, nil
}

func toRecord(row db.Record) domain.Record {
	return domain.Record{
		Wrestler: row.Wrestler,
		Wins:     int(row.Wins),
		Losses:   int(row.Losses),
	}
}
