package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

const billColumns = `id, flat_id, flat_number, month, year, method,
	sqft_charges, water_charges, fixed_charges, sinking_charges, total_amount,
	breakdown, explanation, status, generated_at`

// ReplaceBillsForPeriod atomically replaces the period's bill batch:
// any previously generated bills for the period are deleted and the new
// batch inserted in one transaction.
func (s *SQLiteStore) ReplaceBillsForPeriod(ctx context.Context, period models.Period, bills []models.MaintenanceBill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM maintenance_bills WHERE month = ? AND year = ?",
		period.Month, period.Year,
	); err != nil {
		return fmt.Errorf("failed to delete existing bills: %w", err)
	}

	for i := range bills {
		bill := &bills[i]
		if bill.ID == "" {
			bill.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO maintenance_bills (`+billColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, bill.FlatID, bill.FlatNumber, bill.Period.Month, bill.Period.Year, bill.Method,
			bill.SqftCharges, bill.WaterCharges, bill.FixedCharges, bill.SinkingCharges, bill.TotalAmount,
			bill.BreakdownJSON, bill.Explanation, bill.Status, bill.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill for flat %s: %w", bill.FlatNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListBillsForPeriod returns the period's bills ordered by flat number.
func (s *SQLiteStore) ListBillsForPeriod(ctx context.Context, period models.Period) ([]models.MaintenanceBill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM maintenance_bills WHERE month = ? AND year = ? ORDER BY flat_number",
		period.Month, period.Year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

// ListBillsForFlat returns one flat's bill history, newest first.
func (s *SQLiteStore) ListBillsForFlat(ctx context.Context, flatID string) ([]models.MaintenanceBill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM maintenance_bills WHERE flat_id = ? ORDER BY year DESC, month DESC",
		flatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills for flat: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.MaintenanceBill, error) {
	bill := &models.MaintenanceBill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM maintenance_bills WHERE id = ?",
		id,
	).Scan(&bill.ID, &bill.FlatID, &bill.FlatNumber, &bill.Period.Month, &bill.Period.Year, &bill.Method,
		&bill.SqftCharges, &bill.WaterCharges, &bill.FixedCharges, &bill.SinkingCharges, &bill.TotalAmount,
		&bill.BreakdownJSON, &bill.Explanation, &bill.Status, &bill.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

func scanBills(rows *sql.Rows) ([]models.MaintenanceBill, error) {
	var bills []models.MaintenanceBill
	for rows.Next() {
		var bill models.MaintenanceBill
		err := rows.Scan(&bill.ID, &bill.FlatID, &bill.FlatNumber, &bill.Period.Month, &bill.Period.Year, &bill.Method,
			&bill.SqftCharges, &bill.WaterCharges, &bill.FixedCharges, &bill.SinkingCharges, &bill.TotalAmount,
			&bill.BreakdownJSON, &bill.Explanation, &bill.Status, &bill.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}
