package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

func TestEnterWaterExpense_DerivesPerOccupantCharge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := NewSocietyService(store)

	period := models.Period{Month: 6, Year: 2025}
	expense := &models.WaterExpense{
		Period:            period,
		TankerCharges:     3000,
		GovernmentCharges: 2000,
		OtherCharges:      500,
		TotalOccupants:    55,
	}
	if err := svc.EnterWaterExpense(ctx, expense); err != nil {
		t.Fatalf("EnterWaterExpense failed: %v", err)
	}

	got, err := svc.WaterExpense(ctx, period)
	if err != nil {
		t.Fatalf("WaterExpense failed: %v", err)
	}
	if math.Abs(got.PerOccupantCharge-5500.0/55) > 1e-9 {
		t.Errorf("expected per-occupant charge 100, got %v", got.PerOccupantCharge)
	}
}

func TestEnterWaterExpense_RejectsZeroOccupants(t *testing.T) {
	store := newTestStore(t)
	svc := NewSocietyService(store)

	err := svc.EnterWaterExpense(context.Background(), &models.WaterExpense{
		Period:         models.Period{Month: 6, Year: 2025},
		TankerCharges:  3000,
		TotalOccupants: 0,
	})
	if err == nil {
		t.Fatal("expected error for zero occupants")
	}
	// The model validation fires before allocation; either way the record
	// must not be written.
	if _, got := svc.WaterExpense(context.Background(), models.Period{Month: 6, Year: 2025}); !errors.Is(got, storage.ErrNotFound) {
		t.Errorf("expected no water record after rejection, got %v", got)
	}
}

func TestSaveSettings_Validation(t *testing.T) {
	store := newTestStore(t)
	svc := NewSocietyService(store)
	ctx := context.Background()

	tests := []struct {
		name     string
		settings models.ApartmentSettings
		wantErr  error
	}{
		{
			name:     "zero flats",
			settings: models.ApartmentSettings{TotalFlats: 0, CalculationMethod: models.MethodVariable},
			wantErr:  models.ErrInvalidFlatCount,
		},
		{
			name:     "bad method",
			settings: models.ApartmentSettings{TotalFlats: 10, CalculationMethod: "flat_fee"},
			wantErr:  models.ErrInvalidMethod,
		},
		{
			name:     "negative sinking fund",
			settings: models.ApartmentSettings{TotalFlats: 10, CalculationMethod: models.MethodVariable, SinkingFund: -1},
			wantErr:  models.ErrInvalidAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.SaveSettings(ctx, &tt.settings); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFlatLifecycle(t *testing.T) {
	store := newTestStore(t)
	svc := NewSocietyService(store)
	ctx := context.Background()

	flat := models.Flat{Number: "C-301", AreaSqft: 920, Occupants: 3, OwnerName: "Meera Iyer"}
	if err := svc.CreateFlat(ctx, &flat); err != nil {
		t.Fatalf("CreateFlat failed: %v", err)
	}
	if flat.ID == "" {
		t.Fatal("expected an assigned flat ID")
	}

	flat.Occupants = 4
	if err := svc.UpdateFlat(ctx, &flat); err != nil {
		t.Fatalf("UpdateFlat failed: %v", err)
	}
	got, err := svc.GetFlat(ctx, flat.ID)
	if err != nil {
		t.Fatalf("GetFlat failed: %v", err)
	}
	if got.Occupants != 4 {
		t.Errorf("expected 4 occupants after update, got %d", got.Occupants)
	}

	if err := svc.DeleteFlat(ctx, flat.ID); err != nil {
		t.Fatalf("DeleteFlat failed: %v", err)
	}
	if _, err := svc.GetFlat(ctx, flat.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFixedExpenseDeactivation(t *testing.T) {
	store := newTestStore(t)
	svc := NewSocietyService(store)
	ctx := context.Background()

	expense := models.FixedExpense{Name: "Gardening", Amount: 8000, Frequency: models.FrequencyMonthly, AccountCode: "GARD", Active: true}
	if err := svc.CreateFixedExpense(ctx, &expense); err != nil {
		t.Fatalf("CreateFixedExpense failed: %v", err)
	}

	expense.Active = false
	if err := svc.UpdateFixedExpense(ctx, &expense); err != nil {
		t.Fatalf("UpdateFixedExpense failed: %v", err)
	}

	expenses, err := svc.ListFixedExpenses(ctx)
	if err != nil {
		t.Fatalf("ListFixedExpenses failed: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Active {
		t.Errorf("expected one inactive expense, got %+v", expenses)
	}
	if billing.AggregateMonthlyFixedExpenses(expenses) != 0 {
		t.Errorf("inactive expense must contribute 0 to aggregation")
	}
}
