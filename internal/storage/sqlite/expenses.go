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

// CreateFixedExpense persists a new recurring expense.
func (s *SQLiteStore) CreateFixedExpense(ctx context.Context, expense *models.FixedExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO fixed_expenses (id, name, amount, frequency, account_code, active, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Name, expense.Amount, expense.Frequency, expense.AccountCode, expense.Active, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fixed expense: %w", err)
	}
	return nil
}

// ListFixedExpenses returns all fixed expenses, active and inactive, ordered
// by creation time. Aggregation filters inactive ones itself.
func (s *SQLiteStore) ListFixedExpenses(ctx context.Context) ([]models.FixedExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, frequency, account_code, active, created_at FROM fixed_expenses ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed expenses: %w", err)
	}
	defer rows.Close()

	return scanFixedExpenses(rows)
}

// UpdateFixedExpense updates an existing expense.
func (s *SQLiteStore) UpdateFixedExpense(ctx context.Context, expense *models.FixedExpense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE fixed_expenses SET name = ?, amount = ?, frequency = ?, account_code = ?, active = ? WHERE id = ?",
		expense.Name, expense.Amount, expense.Frequency, expense.AccountCode, expense.Active, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fixed expense: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteFixedExpense removes an expense.
func (s *SQLiteStore) DeleteFixedExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fixed_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete fixed expense: %w", err)
	}
	return requireRowAffected(res)
}

// UpsertWaterExpense inserts or replaces the period's single water record.
func (s *SQLiteStore) UpsertWaterExpense(ctx context.Context, expense *models.WaterExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO water_expenses (id, month, year, tanker_charges, government_charges, other_charges, total_occupants, per_occupant_charge, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (month, year) DO UPDATE SET
		     tanker_charges = excluded.tanker_charges,
		     government_charges = excluded.government_charges,
		     other_charges = excluded.other_charges,
		     total_occupants = excluded.total_occupants,
		     per_occupant_charge = excluded.per_occupant_charge`,
		expense.ID, expense.Period.Month, expense.Period.Year,
		expense.TankerCharges, expense.GovernmentCharges, expense.OtherCharges,
		expense.TotalOccupants, expense.PerOccupantCharge, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert water expense: %w", err)
	}
	return nil
}

// GetWaterExpense retrieves the water record for a period.
func (s *SQLiteStore) GetWaterExpense(ctx context.Context, period models.Period) (*models.WaterExpense, error) {
	return getWaterExpense(ctx, s.db, period)
}

// querier abstracts *sql.DB and *sql.Tx so snapshot reads can share code.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getWaterExpense(ctx context.Context, q querier, period models.Period) (*models.WaterExpense, error) {
	expense := &models.WaterExpense{}
	err := q.QueryRowContext(ctx,
		`SELECT id, month, year, tanker_charges, government_charges, other_charges, total_occupants, per_occupant_charge, created_at
		 FROM water_expenses WHERE month = ? AND year = ?`,
		period.Month, period.Year,
	).Scan(&expense.ID, &expense.Period.Month, &expense.Period.Year,
		&expense.TankerCharges, &expense.GovernmentCharges, &expense.OtherCharges,
		&expense.TotalOccupants, &expense.PerOccupantCharge, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get water expense: %w", err)
	}
	return expense, nil
}

func scanFixedExpenses(rows *sql.Rows) ([]models.FixedExpense, error) {
	var expenses []models.FixedExpense
	for rows.Next() {
		var e models.FixedExpense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Frequency, &e.AccountCode, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fixed expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fixed expenses: %w", err)
	}
	return expenses, nil
}
