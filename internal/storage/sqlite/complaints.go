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

// CreateComplaint persists a new complaint.
func (s *SQLiteStore) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if complaint.CreatedAt == 0 {
		complaint.CreatedAt = now
	}
	complaint.UpdatedAt = now

	var flatID sql.NullString
	if complaint.FlatID != "" {
		flatID = sql.NullString{String: complaint.FlatID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO complaints (id, raised_by, flat_id, category, subject, body, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		complaint.ID, complaint.RaisedBy, flatID, complaint.Category, complaint.Subject, complaint.Body,
		complaint.Status, complaint.CreatedAt, complaint.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}
	return nil
}

// GetComplaint retrieves a complaint by ID.
func (s *SQLiteStore) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	var flatID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, raised_by, flat_id, category, subject, body, status, created_at, updated_at FROM complaints WHERE id = ?",
		id,
	).Scan(&complaint.ID, &complaint.RaisedBy, &flatID, &complaint.Category, &complaint.Subject,
		&complaint.Body, &complaint.Status, &complaint.CreatedAt, &complaint.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	complaint.FlatID = flatID.String
	return complaint, nil
}

// ListComplaints returns all complaints, newest first.
func (s *SQLiteStore) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.listComplaints(ctx,
		"SELECT id, raised_by, flat_id, category, subject, body, status, created_at, updated_at FROM complaints ORDER BY created_at DESC")
}

// ListComplaintsByUser returns one member's complaints, newest first.
func (s *SQLiteStore) ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	return s.listComplaints(ctx,
		"SELECT id, raised_by, flat_id, category, subject, body, status, created_at, updated_at FROM complaints WHERE raised_by = ? ORDER BY created_at DESC",
		userID)
}

func (s *SQLiteStore) listComplaints(ctx context.Context, query string, args ...any) ([]models.Complaint, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		var flatID sql.NullString
		if err := rows.Scan(&c.ID, &c.RaisedBy, &flatID, &c.Category, &c.Subject, &c.Body, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		c.FlatID = flatID.String
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate complaints: %w", err)
	}
	return complaints, nil
}

// UpdateComplaintStatus moves a complaint through its lifecycle.
func (s *SQLiteStore) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE complaints SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update complaint status: %w", err)
	}
	return requireRowAffected(res)
}
