package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

// GetSettings returns the society's active settings row.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*models.ApartmentSettings, error) {
	settings := &models.ApartmentSettings{}
	var sqftRate sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, total_flats, calculation_method, sqft_rate, sinking_fund, updated_at FROM apartment_settings LIMIT 1",
	).Scan(&settings.ID, &settings.TotalFlats, &settings.CalculationMethod, &sqftRate, &settings.SinkingFund, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if sqftRate.Valid {
		rate := sqftRate.Float64
		settings.SqftRate = &rate
	}
	return settings, nil
}

// SaveSettings upserts the single settings row for the society.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings *models.ApartmentSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	settings.UpdatedAt = time.Now().Unix()

	var sqftRate sql.NullFloat64
	if settings.SqftRate != nil {
		sqftRate = sql.NullFloat64{Float64: *settings.SqftRate, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// One active row per society: replace whatever is there.
	if _, err := tx.ExecContext(ctx, "DELETE FROM apartment_settings"); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO apartment_settings (id, total_flats, calculation_method, sqft_rate, sinking_fund, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		settings.ID, settings.TotalFlats, settings.CalculationMethod, sqftRate, settings.SinkingFund, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
