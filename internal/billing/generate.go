package billing

import (
	"errors"
	"fmt"

	"github.com/societyhub/backend/internal/models"
)

var (
	// ErrWaterExpenseMissing is returned when the variable method is
	// selected but no water expense was entered for the period.
	ErrWaterExpenseMissing = errors.New("water expense not entered for this month")

	// ErrUnknownMethod is returned for an unrecognized calculation method.
	ErrUnknownMethod = errors.New("unknown calculation method")
)

// GenerateBills produces one bill draft per flat for the given period.
//
// The strategy is selected once from settings.CalculationMethod; missing
// required inputs (rate for sqft_rate, water expense for variable) abort the
// whole batch with a configuration error. Output preserves input order and
// generation is all-or-nothing: a flat that fails to calculate fails the
// period rather than being silently skipped.
func GenerateBills(flats []models.Flat, settings models.ApartmentSettings, water *models.WaterExpense, expenses []models.FixedExpense, period models.Period) ([]BillDraft, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if settings.TotalFlats <= 0 {
		return nil, ErrNoFlatsConfigured
	}

	var (
		calc BillCalculator
		err  error
	)
	switch settings.CalculationMethod {
	case models.MethodSqftRate:
		calc, err = NewFixedRateCalculator(settings.SqftRate)
		if err != nil {
			return nil, err
		}
	case models.MethodVariable:
		if water == nil {
			return nil, ErrWaterExpenseMissing
		}
		alloc, allocErr := NewWaterAllocation(
			water.TankerCharges, water.GovernmentCharges, water.OtherCharges,
			water.TotalOccupants)
		if allocErr != nil {
			return nil, allocErr
		}
		calc, err = NewVariableCalculator(alloc, expenses, settings.SinkingFund, settings.TotalFlats)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, settings.CalculationMethod)
	}

	bills := make([]BillDraft, 0, len(flats))
	for _, flat := range flats {
		draft, err := calc.Calculate(flat, period)
		if err != nil {
			return nil, fmt.Errorf("flat %s: %w", flat.Number, err)
		}
		bills = append(bills, *draft)
	}
	return bills, nil
}
