package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

// SocietyService manages the society's billing configuration: settings,
// flats, fixed expenses and per-period water records.
type SocietyService struct {
	store storage.Store
}

// NewSocietyService creates a society service.
func NewSocietyService(store storage.Store) *SocietyService {
	return &SocietyService{store: store}
}

// Settings returns the society's billing configuration.
func (s *SocietyService) Settings(ctx context.Context) (*models.ApartmentSettings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings validates and persists the billing configuration.
func (s *SocietyService) SaveSettings(ctx context.Context, settings *models.ApartmentSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	settings.UpdatedAt = time.Now().Unix()
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	slog.Info("Settings updated",
		"method", settings.CalculationMethod,
		"total_flats", settings.TotalFlats,
	)
	return nil
}

// CreateFlat onboards a flat.
func (s *SocietyService) CreateFlat(ctx context.Context, flat *models.Flat) error {
	if err := flat.Validate(); err != nil {
		return err
	}
	flat.ID = uuid.New().String()
	flat.CreatedAt = time.Now().Unix()
	if err := s.store.CreateFlat(ctx, flat); err != nil {
		return fmt.Errorf("failed to create flat: %w", err)
	}
	return nil
}

// GetFlat returns one flat by ID.
func (s *SocietyService) GetFlat(ctx context.Context, id string) (*models.Flat, error) {
	return s.store.GetFlat(ctx, id)
}

// ListFlats returns all flats ordered by flat number.
func (s *SocietyService) ListFlats(ctx context.Context) ([]models.Flat, error) {
	return s.store.ListFlats(ctx)
}

// UpdateFlat validates and persists changes to a flat.
func (s *SocietyService) UpdateFlat(ctx context.Context, flat *models.Flat) error {
	if err := flat.Validate(); err != nil {
		return err
	}
	return s.store.UpdateFlat(ctx, flat)
}

// DeleteFlat removes a flat. Its bills are removed with it.
func (s *SocietyService) DeleteFlat(ctx context.Context, id string) error {
	return s.store.DeleteFlat(ctx, id)
}

// CreateFixedExpense records a recurring expense.
func (s *SocietyService) CreateFixedExpense(ctx context.Context, expense *models.FixedExpense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	expense.ID = uuid.New().String()
	expense.CreatedAt = time.Now().Unix()
	if err := s.store.CreateFixedExpense(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListFixedExpenses returns all recorded expenses, active and inactive.
func (s *SocietyService) ListFixedExpenses(ctx context.Context) ([]models.FixedExpense, error) {
	return s.store.ListFixedExpenses(ctx)
}

// UpdateFixedExpense validates and persists changes to an expense,
// including activation and deactivation.
func (s *SocietyService) UpdateFixedExpense(ctx context.Context, expense *models.FixedExpense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	return s.store.UpdateFixedExpense(ctx, expense)
}

// DeleteFixedExpense removes an expense permanently. Prefer deactivation,
// which keeps the record for reports.
func (s *SocietyService) DeleteFixedExpense(ctx context.Context, id string) error {
	return s.store.DeleteFixedExpense(ctx, id)
}

// EnterWaterExpense records the water cost for a period, deriving the
// per-occupant charge. Entering a period twice replaces the earlier record.
func (s *SocietyService) EnterWaterExpense(ctx context.Context, expense *models.WaterExpense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	perOccupant, err := billing.AllocateWaterCost(
		expense.TankerCharges, expense.GovernmentCharges, expense.OtherCharges,
		expense.TotalOccupants,
	)
	if err != nil {
		return err
	}
	expense.PerOccupantCharge = perOccupant
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	expense.CreatedAt = time.Now().Unix()
	if err := s.store.UpsertWaterExpense(ctx, expense); err != nil {
		return fmt.Errorf("failed to save water expense: %w", err)
	}
	slog.Info("Water expense recorded",
		"period", expense.Period.String(),
		"total_charges", expense.TotalCharges(),
		"per_occupant", perOccupant,
	)
	return nil
}

// WaterExpense returns the water record for a period.
func (s *SocietyService) WaterExpense(ctx context.Context, period models.Period) (*models.WaterExpense, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.store.GetWaterExpense(ctx, period)
}
