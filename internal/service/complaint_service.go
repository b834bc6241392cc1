package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

// ComplaintService tracks resident-raised issues.
type ComplaintService struct {
	store storage.Store
}

// NewComplaintService creates a complaint service.
func NewComplaintService(store storage.Store) *ComplaintService {
	return &ComplaintService{store: store}
}

// Raise files a new complaint on behalf of a resident. Status always starts
// as open.
func (s *ComplaintService) Raise(ctx context.Context, complaint *models.Complaint) error {
	complaint.Status = models.ComplaintOpen
	if err := complaint.Validate(); err != nil {
		return err
	}
	complaint.ID = uuid.New().String()
	now := time.Now().Unix()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	if err := s.store.CreateComplaint(ctx, complaint); err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// Get returns one complaint by ID.
func (s *ComplaintService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	return s.store.GetComplaint(ctx, id)
}

// List returns all complaints, newest first.
func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	return s.store.ListComplaints(ctx)
}

// ListByUser returns the complaints a resident has raised, newest first.
func (s *ComplaintService) ListByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	return s.store.ListComplaintsByUser(ctx, userID)
}

// UpdateStatus moves a complaint through its lifecycle.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	switch status {
	case models.ComplaintOpen, models.ComplaintInProgress, models.ComplaintResolved:
	default:
		return models.ErrInvalidComplaintStatus
	}
	return s.store.UpdateComplaintStatus(ctx, id, status)
}
