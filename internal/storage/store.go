// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/societyhub/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// BillingSnapshot is one consistent view of everything bill generation
// needs for a period. It is read in a single transaction so that settings,
// flats, expenses and the water record cannot drift between reads.
type BillingSnapshot struct {
	Settings *models.ApartmentSettings
	Flats    []models.Flat
	Expenses []models.FixedExpense

	// Water is nil when no water expense was entered for the period.
	Water *models.WaterExpense
}

// Store defines the interface for society data storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// Settings. One active row per society; SaveSettings upserts it.
	GetSettings(ctx context.Context) (*models.ApartmentSettings, error)
	SaveSettings(ctx context.Context, settings *models.ApartmentSettings) error

	// Flats.
	CreateFlat(ctx context.Context, flat *models.Flat) error
	GetFlat(ctx context.Context, id string) (*models.Flat, error)
	ListFlats(ctx context.Context) ([]models.Flat, error)
	UpdateFlat(ctx context.Context, flat *models.Flat) error
	DeleteFlat(ctx context.Context, id string) error

	// Fixed expenses.
	CreateFixedExpense(ctx context.Context, expense *models.FixedExpense) error
	ListFixedExpenses(ctx context.Context) ([]models.FixedExpense, error)
	UpdateFixedExpense(ctx context.Context, expense *models.FixedExpense) error
	DeleteFixedExpense(ctx context.Context, id string) error

	// Water expenses. At most one record per period.
	UpsertWaterExpense(ctx context.Context, expense *models.WaterExpense) error
	GetWaterExpense(ctx context.Context, period models.Period) (*models.WaterExpense, error)

	// GetBillingSnapshot reads settings, flats, the expense list and the
	// period's water record in one transaction.
	GetBillingSnapshot(ctx context.Context, period models.Period) (*BillingSnapshot, error)

	// Bills. ReplaceBillsForPeriod atomically deletes any existing batch
	// for the period and inserts the new one.
	ReplaceBillsForPeriod(ctx context.Context, period models.Period, bills []models.MaintenanceBill) error
	ListBillsForPeriod(ctx context.Context, period models.Period) ([]models.MaintenanceBill, error)
	ListBillsForFlat(ctx context.Context, flatID string) ([]models.MaintenanceBill, error)
	GetBill(ctx context.Context, id string) (*models.MaintenanceBill, error)

	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Complaints.
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	ListComplaintsByUser(ctx context.Context, userID string) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error

	// Close releases any resources held by the store.
	Close() error
}
