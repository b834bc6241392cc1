package models

import (
	"errors"
	"strings"
)

// ComplaintStatus is the tracked state of a complaint.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

var (
	ErrEmptySubject           = errors.New("complaint subject cannot be empty")
	ErrInvalidComplaintStatus = errors.New("status must be open, in_progress or resolved")
)

// Complaint is a resident-raised issue tracked by administrators.
type Complaint struct {
	// ID is the unique identifier for the complaint (UUID format).
	ID string

	// RaisedBy is the user ID of the resident who raised the complaint.
	RaisedBy string

	// FlatID is the flat the complaint concerns, if any.
	FlatID string

	// Category groups complaints for reporting (e.g. "plumbing", "security").
	Category string

	// Subject and Body describe the issue.
	Subject string
	Body    string

	// Status is the current tracked state.
	Status ComplaintStatus

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

func (c Complaint) Validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return ErrEmptySubject
	}
	switch c.Status {
	case ComplaintOpen, ComplaintInProgress, ComplaintResolved:
	default:
		return ErrInvalidComplaintStatus
	}
	return nil
}
