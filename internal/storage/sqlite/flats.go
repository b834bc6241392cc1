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

// CreateFlat persists a new flat, generating its ID if unset.
func (s *SQLiteStore) CreateFlat(ctx context.Context, flat *models.Flat) error {
	if flat.ID == "" {
		flat.ID = uuid.New().String()
	}
	if flat.CreatedAt == 0 {
		flat.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO flats (id, number, area_sqft, occupants, owner_name, owner_phone, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		flat.ID, flat.Number, flat.AreaSqft, flat.Occupants, flat.OwnerName, flat.OwnerPhone, flat.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert flat: %w", err)
	}
	return nil
}

// GetFlat retrieves a flat by ID.
func (s *SQLiteStore) GetFlat(ctx context.Context, id string) (*models.Flat, error) {
	flat := &models.Flat{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, number, area_sqft, occupants, owner_name, owner_phone, created_at FROM flats WHERE id = ?",
		id,
	).Scan(&flat.ID, &flat.Number, &flat.AreaSqft, &flat.Occupants, &flat.OwnerName, &flat.OwnerPhone, &flat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flat: %w", err)
	}
	return flat, nil
}

// ListFlats returns all flats ordered by flat number.
func (s *SQLiteStore) ListFlats(ctx context.Context) ([]models.Flat, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, number, area_sqft, occupants, owner_name, owner_phone, created_at FROM flats ORDER BY number",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	defer rows.Close()

	return scanFlats(rows)
}

// UpdateFlat updates an existing flat's mutable fields.
func (s *SQLiteStore) UpdateFlat(ctx context.Context, flat *models.Flat) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE flats SET number = ?, area_sqft = ?, occupants = ?, owner_name = ?, owner_phone = ? WHERE id = ?",
		flat.Number, flat.AreaSqft, flat.Occupants, flat.OwnerName, flat.OwnerPhone, flat.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update flat: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteFlat removes a flat and cascades to its bills.
func (s *SQLiteStore) DeleteFlat(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM flats WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete flat: %w", err)
	}
	return requireRowAffected(res)
}

func scanFlats(rows *sql.Rows) ([]models.Flat, error) {
	var flats []models.Flat
	for rows.Next() {
		var flat models.Flat
		if err := rows.Scan(&flat.ID, &flat.Number, &flat.AreaSqft, &flat.Occupants, &flat.OwnerName, &flat.OwnerPhone, &flat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flat: %w", err)
		}
		flats = append(flats, flat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flats: %w", err)
	}
	return flats, nil
}

// requireRowAffected maps zero-row updates/deletes to ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
