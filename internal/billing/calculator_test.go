package billing

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/societyhub/backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestFixedRateCalculator(t *testing.T) {
	period := models.Period{Month: 4, Year: 2025}

	t.Run("area times rate", func(t *testing.T) {
		calc, err := NewFixedRateCalculator(floatPtr(5))
		if err != nil {
			t.Fatalf("NewFixedRateCalculator failed: %v", err)
		}

		flat := models.Flat{ID: "f1", Number: "A-101", AreaSqft: 1000, Occupants: 3}
		draft, err := calc.Calculate(flat, period)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}

		if math.Abs(draft.SqftCharges-5000) > 0.01 {
			t.Errorf("SqftCharges = %v, want 5000", draft.SqftCharges)
		}
		if math.Abs(draft.TotalAmount-5000) > 0.01 {
			t.Errorf("TotalAmount = %v, want 5000", draft.TotalAmount)
		}
		if draft.Method != models.MethodSqftRate {
			t.Errorf("Method = %v, want sqft_rate", draft.Method)
		}
		if draft.Breakdown.AreaSqft != 1000 || draft.Breakdown.SqftRate != 5 {
			t.Errorf("breakdown fields = %v/%v, want 1000/5", draft.Breakdown.AreaSqft, draft.Breakdown.SqftRate)
		}
		if !strings.Contains(draft.Breakdown.Explanation, "1000 sq ft") {
			t.Errorf("explanation missing area: %q", draft.Breakdown.Explanation)
		}
		if !strings.Contains(draft.Breakdown.Explanation, "₹5000.00") {
			t.Errorf("explanation missing total: %q", draft.Breakdown.Explanation)
		}
	})

	t.Run("nil rate is a configuration error", func(t *testing.T) {
		if _, err := NewFixedRateCalculator(nil); !errors.Is(err, ErrRateNotConfigured) {
			t.Errorf("expected ErrRateNotConfigured, got %v", err)
		}
	})

	t.Run("non-positive area fails the calculation", func(t *testing.T) {
		calc, _ := NewFixedRateCalculator(floatPtr(5))
		flat := models.Flat{ID: "f1", Number: "A-101", AreaSqft: 0}
		if _, err := calc.Calculate(flat, period); !errors.Is(err, models.ErrInvalidArea) {
			t.Errorf("expected ErrInvalidArea, got %v", err)
		}
	})

	t.Run("pure function: identical inputs yield identical drafts", func(t *testing.T) {
		calc, _ := NewFixedRateCalculator(floatPtr(7.5))
		flat := models.Flat{ID: "f2", Number: "B-202", AreaSqft: 850, Occupants: 2}

		first, err := calc.Calculate(flat, period)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		second, err := calc.Calculate(flat, period)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("repeated calculation differs:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

func TestVariableCalculator(t *testing.T) {
	period := models.Period{Month: 4, Year: 2025}

	// Scenario from the society's books: 3000 tanker + 2000 municipal over
	// 50 occupants, 45000/month of fixed expenses, 9000 sinking fund,
	// 30 flats.
	alloc, err := NewWaterAllocation(3000, 2000, 0, 50)
	if err != nil {
		t.Fatalf("NewWaterAllocation failed: %v", err)
	}
	expenses := []models.FixedExpense{
		{Name: "Security", Amount: 30000, Frequency: models.FrequencyMonthly, Active: true},
		{Name: "Pest control", Amount: 9000, Frequency: models.FrequencyQuarterly, Active: true},
		{Name: "Lift AMC", Amount: 144000, Frequency: models.FrequencyAnnual, Active: true},
	}

	calc, err := NewVariableCalculator(alloc, expenses, 9000, 30)
	if err != nil {
		t.Fatalf("NewVariableCalculator failed: %v", err)
	}

	t.Run("four occupant flat", func(t *testing.T) {
		flat := models.Flat{ID: "f1", Number: "A-101", AreaSqft: 1000, Occupants: 4}
		draft, err := calc.Calculate(flat, period)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}

		if math.Abs(draft.WaterCharges-400) > 0.01 {
			t.Errorf("WaterCharges = %v, want 400", draft.WaterCharges)
		}
		if math.Abs(draft.FixedCharges-1500) > 0.01 {
			t.Errorf("FixedCharges = %v, want 1500", draft.FixedCharges)
		}
		if math.Abs(draft.SinkingCharges-300) > 0.01 {
			t.Errorf("SinkingCharges = %v, want 300", draft.SinkingCharges)
		}
		if math.Abs(draft.TotalAmount-2200) > 0.01 {
			t.Errorf("TotalAmount = %v, want 2200", draft.TotalAmount)
		}

		// Sum law: total equals the sum of disclosed components.
		sum := draft.WaterCharges + draft.FixedCharges + draft.SinkingCharges
		if math.Abs(draft.TotalAmount-sum) > 1e-9 {
			t.Errorf("TotalAmount %v != component sum %v", draft.TotalAmount, sum)
		}
	})

	t.Run("breakdown discloses every step", func(t *testing.T) {
		flat := models.Flat{ID: "f1", Number: "A-101", AreaSqft: 1000, Occupants: 4}
		draft, _ := calc.Calculate(flat, period)

		water := draft.Breakdown.Water
		if water == nil {
			t.Fatal("expected water breakdown")
		}
		if water.TotalOccupants != 50 || water.FlatOccupants != 4 {
			t.Errorf("water occupants = %d/%d, want 50/4", water.TotalOccupants, water.FlatOccupants)
		}
		if math.Abs(water.PerOccupantCharge-100) > 0.01 {
			t.Errorf("PerOccupantCharge = %v, want 100", water.PerOccupantCharge)
		}

		if len(draft.Breakdown.ExpenseShares) != 3 {
			t.Fatalf("expected 3 expense shares, got %d", len(draft.Breakdown.ExpenseShares))
		}
		security := draft.Breakdown.ExpenseShares[0]
		if math.Abs(security.PerFlatShare-1000) > 0.01 {
			t.Errorf("Security share = %v, want 1000", security.PerFlatShare)
		}

		for _, want := range []string{"₹100.00 per occupant", "₹1500.00", "₹300.00", "₹2200.00"} {
			if !strings.Contains(draft.Breakdown.Explanation, want) {
				t.Errorf("explanation missing %q:\n%s", want, draft.Breakdown.Explanation)
			}
		}
	})

	t.Run("zero occupant flat owes only fixed and sinking", func(t *testing.T) {
		flat := models.Flat{ID: "f2", Number: "B-202", AreaSqft: 800, Occupants: 0}
		draft, err := calc.Calculate(flat, period)
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		if draft.WaterCharges != 0 {
			t.Errorf("WaterCharges = %v, want 0", draft.WaterCharges)
		}
		if math.Abs(draft.TotalAmount-1800) > 0.01 {
			t.Errorf("TotalAmount = %v, want 1800", draft.TotalAmount)
		}
	})

	t.Run("conservation: fixed shares across all flats reproduce the monthly total", func(t *testing.T) {
		var sum float64
		for i := 0; i < 30; i++ {
			flat := models.Flat{ID: "f", Number: "X-1", AreaSqft: 500, Occupants: 1}
			draft, err := calc.Calculate(flat, period)
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			sum += draft.FixedCharges
		}
		if math.Abs(sum-45000) > 0.01 {
			t.Errorf("fixed charges across 30 flats = %v, want 45000", sum)
		}
	})

	t.Run("inactive expense excluded from shares", func(t *testing.T) {
		withInactive := append(expenses, models.FixedExpense{
			Name: "Old contract", Amount: 50000, Frequency: models.FrequencyMonthly, Active: false,
		})
		c, err := NewVariableCalculator(alloc, withInactive, 9000, 30)
		if err != nil {
			t.Fatalf("NewVariableCalculator failed: %v", err)
		}
		draft, _ := c.Calculate(models.Flat{ID: "f1", Number: "A-101", AreaSqft: 1000, Occupants: 4}, period)
		if len(draft.Breakdown.ExpenseShares) != 3 {
			t.Errorf("expected 3 shares, inactive one leaked in: %d", len(draft.Breakdown.ExpenseShares))
		}
		if math.Abs(draft.FixedCharges-1500) > 0.01 {
			t.Errorf("FixedCharges = %v, want 1500", draft.FixedCharges)
		}
	})

	t.Run("zero total flats is a configuration error", func(t *testing.T) {
		if _, err := NewVariableCalculator(alloc, expenses, 9000, 0); !errors.Is(err, ErrNoFlatsConfigured) {
			t.Errorf("expected ErrNoFlatsConfigured, got %v", err)
		}
	})

	t.Run("negative occupant count fails the calculation", func(t *testing.T) {
		flat := models.Flat{ID: "f3", Number: "C-303", AreaSqft: 700, Occupants: -1}
		if _, err := calc.Calculate(flat, period); !errors.Is(err, models.ErrNegativeOccupants) {
			t.Errorf("expected ErrNegativeOccupants, got %v", err)
		}
	})
}
