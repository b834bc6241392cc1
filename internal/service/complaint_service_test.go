package service

import (
	"context"
	"errors"
	"testing"

	"github.com/societyhub/backend/internal/models"
)

func TestComplaintLifecycle(t *testing.T) {
	store := newTestStore(t)
	svc := NewComplaintService(store)
	ctx := context.Background()

	complaint := models.Complaint{
		RaisedBy: "user-1",
		FlatID:   "flat-1",
		Category: "plumbing",
		Subject:  "Leaking pipe in stairwell",
		Body:     "Water dripping near the second floor landing.",
	}
	if err := svc.Raise(ctx, &complaint); err != nil {
		t.Fatalf("Raise failed: %v", err)
	}
	if complaint.Status != models.ComplaintOpen {
		t.Errorf("expected open status on raise, got %s", complaint.Status)
	}

	if err := svc.UpdateStatus(ctx, complaint.ID, models.ComplaintInProgress); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := svc.Get(ctx, complaint.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.ComplaintInProgress {
		t.Errorf("expected in_progress, got %s", got.Status)
	}

	mine, err := svc.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("expected 1 complaint for user-1, got %d", len(mine))
	}
	if others, _ := svc.ListByUser(ctx, "user-2"); len(others) != 0 {
		t.Errorf("expected no complaints for user-2, got %d", len(others))
	}
}

func TestComplaintValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewComplaintService(store)
	ctx := context.Background()

	if err := svc.Raise(ctx, &models.Complaint{RaisedBy: "user-1", Subject: "   "}); !errors.Is(err, models.ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, "any-id", "closed"); !errors.Is(err, models.ErrInvalidComplaintStatus) {
		t.Fatalf("expected ErrInvalidComplaintStatus, got %v", err)
	}
}
