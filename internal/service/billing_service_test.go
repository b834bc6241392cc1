package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
	"github.com/societyhub/backend/internal/storage/sqlite"
)

// newTestStore creates a SQLite store backed by a temp directory.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "society-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func floatPtr(v float64) *float64 { return &v }

// seedVariableSociety configures a 50-flat variable-method society with two
// flats, fixed expenses aggregating to 75000/month, a 15000 sinking fund and
// a 5000 water bill over 50 occupants.
func seedVariableSociety(t *testing.T, store storage.Store, period models.Period) {
	t.Helper()
	ctx := context.Background()

	society := NewSocietyService(store)
	if err := society.SaveSettings(ctx, &models.ApartmentSettings{
		TotalFlats:        50,
		CalculationMethod: models.MethodVariable,
		SinkingFund:       15000,
	}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	flats := []models.Flat{
		{Number: "A-101", AreaSqft: 1000, Occupants: 4},
		{Number: "A-102", AreaSqft: 850, Occupants: 2},
	}
	for i := range flats {
		if err := society.CreateFlat(ctx, &flats[i]); err != nil {
			t.Fatalf("CreateFlat(%s) failed: %v", flats[i].Number, err)
		}
	}

	expenses := []models.FixedExpense{
		{Name: "Security", Amount: 60000, Frequency: models.FrequencyMonthly, AccountCode: "SEC", Active: true},
		{Name: "Lift AMC", Amount: 45000, Frequency: models.FrequencyQuarterly, AccountCode: "LIFT", Active: true},
		{Name: "Painting", Amount: 999999, Frequency: models.FrequencyAnnual, Active: false},
	}
	for i := range expenses {
		if err := society.CreateFixedExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("CreateFixedExpense(%s) failed: %v", expenses[i].Name, err)
		}
	}

	if err := society.EnterWaterExpense(ctx, &models.WaterExpense{
		Period:            period,
		TankerCharges:     3000,
		GovernmentCharges: 2000,
		TotalOccupants:    50,
	}); err != nil {
		t.Fatalf("EnterWaterExpense failed: %v", err)
	}
}

func TestGenerateBills_VariableMethod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	period := models.Period{Month: 3, Year: 2025}
	seedVariableSociety(t, store, period)

	svc := NewBillingService(store, nil)
	bills, err := svc.GenerateBills(ctx, period)
	if err != nil {
		t.Fatalf("GenerateBills failed: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}

	// Water 5000/50 = 100 per occupant; fixed (60000 + 45000/3)/50 = 1500;
	// sinking 15000/50 = 300.
	first := bills[0]
	if first.FlatNumber != "A-101" {
		t.Fatalf("expected bills ordered by flat number, got %s first", first.FlatNumber)
	}
	if math.Abs(first.WaterCharges-400) > 1e-9 {
		t.Errorf("expected water charges 400, got %v", first.WaterCharges)
	}
	if math.Abs(first.FixedCharges-1500) > 1e-9 {
		t.Errorf("expected fixed charges 1500, got %v", first.FixedCharges)
	}
	if math.Abs(first.SinkingCharges-300) > 1e-9 {
		t.Errorf("expected sinking charges 300, got %v", first.SinkingCharges)
	}
	if math.Abs(first.TotalAmount-2200) > 1e-9 {
		t.Errorf("expected total 2200, got %v", first.TotalAmount)
	}
	if first.Status != models.BillStatusPending {
		t.Errorf("expected pending status, got %s", first.Status)
	}
	if !strings.Contains(first.Explanation, "₹") {
		t.Errorf("expected explanation with rupee amounts, got %q", first.Explanation)
	}

	var breakdown billing.Breakdown
	if err := json.Unmarshal([]byte(first.BreakdownJSON), &breakdown); err != nil {
		t.Fatalf("breakdown JSON does not parse: %v", err)
	}
	if breakdown.Water == nil || math.Abs(breakdown.Water.PerOccupantCharge-100) > 1e-9 {
		t.Errorf("expected per-occupant charge 100 in breakdown, got %+v", breakdown.Water)
	}
	// Inactive expenses never appear in the disclosed shares.
	for _, share := range breakdown.ExpenseShares {
		if share.Name == "Painting" {
			t.Errorf("inactive expense leaked into breakdown: %+v", share)
		}
	}
}

func TestGenerateBills_SqftMethod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	period := models.Period{Month: 3, Year: 2025}

	society := NewSocietyService(store)
	if err := society.SaveSettings(ctx, &models.ApartmentSettings{
		TotalFlats:        10,
		CalculationMethod: models.MethodSqftRate,
		SqftRate:          floatPtr(5),
	}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	flat := models.Flat{Number: "B-201", AreaSqft: 1000, Occupants: 3}
	if err := society.CreateFlat(ctx, &flat); err != nil {
		t.Fatalf("CreateFlat failed: %v", err)
	}

	svc := NewBillingService(store, nil)
	bills, err := svc.GenerateBills(ctx, period)
	if err != nil {
		t.Fatalf("GenerateBills failed: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(bills))
	}
	if math.Abs(bills[0].TotalAmount-5000) > 1e-9 {
		t.Errorf("expected 1000 sq ft x 5 = 5000, got %v", bills[0].TotalAmount)
	}
	if bills[0].WaterCharges != 0 || bills[0].FixedCharges != 0 || bills[0].SinkingCharges != 0 {
		t.Errorf("fixed-rate bill must not carry variable components: %+v", bills[0])
	}
}

func TestGenerateBills_MissingWaterAbortsBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	period := models.Period{Month: 3, Year: 2025}
	seedVariableSociety(t, store, period)

	// A different period has no water record.
	other := models.Period{Month: 4, Year: 2025}
	svc := NewBillingService(store, nil)
	if _, err := svc.GenerateBills(ctx, other); !errors.Is(err, billing.ErrWaterExpenseMissing) {
		t.Fatalf("expected ErrWaterExpenseMissing, got %v", err)
	}

	// All-or-nothing: no partial batch was written.
	stored, err := svc.BillsForPeriod(ctx, other)
	if err != nil {
		t.Fatalf("BillsForPeriod failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected no bills after failed generation, got %d", len(stored))
	}
}

func TestGenerateBills_RegenerationReplacesBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	period := models.Period{Month: 3, Year: 2025}
	seedVariableSociety(t, store, period)

	svc := NewBillingService(store, nil)
	first, err := svc.GenerateBills(ctx, period)
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	// Correct the water entry, then regenerate.
	society := NewSocietyService(store)
	if err := society.EnterWaterExpense(ctx, &models.WaterExpense{
		Period:            period,
		TankerCharges:     6000,
		GovernmentCharges: 4000,
		TotalOccupants:    50,
	}); err != nil {
		t.Fatalf("EnterWaterExpense failed: %v", err)
	}
	second, err := svc.GenerateBills(ctx, period)
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	stored, err := svc.BillsForPeriod(ctx, period)
	if err != nil {
		t.Fatalf("BillsForPeriod failed: %v", err)
	}
	if len(stored) != len(second) {
		t.Fatalf("expected %d bills after regeneration, got %d", len(second), len(stored))
	}
	for _, bill := range stored {
		if bill.ID == first[0].ID || bill.ID == first[1].ID {
			t.Errorf("bill from the replaced batch survived regeneration: %s", bill.ID)
		}
		// Per-occupant doubled from 100 to 200.
		if bill.FlatNumber == "A-101" && math.Abs(bill.WaterCharges-800) > 1e-9 {
			t.Errorf("expected regenerated water charges 800, got %v", bill.WaterCharges)
		}
	}
}

func TestGenerateBills_NoFlats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	society := NewSocietyService(store)
	if err := society.SaveSettings(ctx, &models.ApartmentSettings{
		TotalFlats:        10,
		CalculationMethod: models.MethodSqftRate,
		SqftRate:          floatPtr(5),
	}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	svc := NewBillingService(store, nil)
	if _, err := svc.GenerateBills(ctx, models.Period{Month: 1, Year: 2025}); !errors.Is(err, ErrNoFlats) {
		t.Fatalf("expected ErrNoFlats, got %v", err)
	}
}

func TestGenerateBills_UnconfiguredSettings(t *testing.T) {
	store := newTestStore(t)

	svc := NewBillingService(store, nil)
	if _, err := svc.GenerateBills(context.Background(), models.Period{Month: 1, Year: 2025}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing settings, got %v", err)
	}
}

func TestBillsForFlat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	period := models.Period{Month: 3, Year: 2025}
	seedVariableSociety(t, store, period)

	svc := NewBillingService(store, nil)
	bills, err := svc.GenerateBills(ctx, period)
	if err != nil {
		t.Fatalf("GenerateBills failed: %v", err)
	}

	history, err := svc.BillsForFlat(ctx, bills[0].FlatID)
	if err != nil {
		t.Fatalf("BillsForFlat failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != bills[0].ID {
		t.Errorf("expected the flat's single bill, got %+v", history)
	}

	got, err := svc.GetBill(ctx, bills[0].ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if got.TotalAmount != bills[0].TotalAmount {
		t.Errorf("expected total %v, got %v", bills[0].TotalAmount, got.TotalAmount)
	}
}
