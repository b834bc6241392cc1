package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

// GetBillingSnapshot reads settings, flats, fixed expenses and the period's
// water record inside one transaction, so bill generation works from a
// single consistent view of the data.
func (s *SQLiteStore) GetBillingSnapshot(ctx context.Context, period models.Period) (*storage.BillingSnapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	settings := &models.ApartmentSettings{}
	var sqftRate sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		"SELECT id, total_flats, calculation_method, sqft_rate, sinking_fund, updated_at FROM apartment_settings LIMIT 1",
	).Scan(&settings.ID, &settings.TotalFlats, &settings.CalculationMethod, &sqftRate, &settings.SinkingFund, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if sqftRate.Valid {
		rate := sqftRate.Float64
		settings.SqftRate = &rate
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, number, area_sqft, occupants, owner_name, owner_phone, created_at FROM flats ORDER BY number",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read flats: %w", err)
	}
	flats, err := scanFlats(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = tx.QueryContext(ctx,
		"SELECT id, name, amount, frequency, account_code, active, created_at FROM fixed_expenses ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixed expenses: %w", err)
	}
	expenses, err := scanFixedExpenses(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	// A missing water record is a valid snapshot state; the engine decides
	// whether the selected method requires it.
	water, err := getWaterExpense(ctx, tx, period)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &storage.BillingSnapshot{
		Settings: settings,
		Flats:    flats,
		Expenses: expenses,
		Water:    water,
	}, nil
}
