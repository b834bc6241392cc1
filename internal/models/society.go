package models

import (
	"errors"
	"fmt"
	"strings"
)

// CalculationMethod selects how maintenance bills are computed for a society.
type CalculationMethod string

const (
	// MethodSqftRate bills each flat a flat rate per square foot of area.
	MethodSqftRate CalculationMethod = "sqft_rate"
	// MethodVariable apportions water, fixed expenses and sinking fund per flat.
	MethodVariable CalculationMethod = "variable"
)

// ExpenseFrequency is how often a fixed expense recurs.
type ExpenseFrequency string

const (
	FrequencyMonthly   ExpenseFrequency = "monthly"
	FrequencyQuarterly ExpenseFrequency = "quarterly"
	FrequencyAnnual    ExpenseFrequency = "annual"
)

var (
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year must be between 2000 and 2100")
	ErrInvalidMethod     = errors.New("calculation method must be sqft_rate or variable")
	ErrInvalidFlatCount  = errors.New("total flats must be positive")
	ErrInvalidArea       = errors.New("flat area must be positive")
	ErrNegativeOccupants = errors.New("occupant count cannot be negative")
	ErrEmptyFlatNumber   = errors.New("flat number cannot be empty")
	ErrEmptyExpenseName  = errors.New("expense name cannot be empty")
	ErrInvalidAmount     = errors.New("amount cannot be negative")
	ErrInvalidFrequency  = errors.New("frequency must be monthly, quarterly or annual")
	ErrNoOccupantTotal   = errors.New("total occupants must be positive")
)

// Period identifies one billing cycle.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < 2000 || p.Year > 2100 {
		return ErrInvalidYear
	}
	return nil
}

// String renders the period as "MM/YYYY" for logs and bill text.
func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

// ApartmentSettings is the society-wide billing configuration.
// Exactly one active instance exists per society; administrators mutate it.
type ApartmentSettings struct {
	// ID is the unique identifier for the settings row (UUID format).
	ID string

	// TotalFlats is the configured number of flats in the society. Proration
	// denominators use this value, not the count of flats actually billed.
	TotalFlats int

	// CalculationMethod selects the active billing strategy.
	CalculationMethod CalculationMethod

	// SqftRate is the rate per square foot. Required when the method is
	// sqft_rate; nil means not configured.
	SqftRate *float64

	// SinkingFund is the monthly sinking-fund contribution for the whole
	// society, apportioned equally across flats under the variable method.
	// Zero means no sinking fund.
	SinkingFund float64

	// UpdatedAt is the Unix timestamp of the last settings change.
	UpdatedAt int64
}

func (s ApartmentSettings) Validate() error {
	if s.TotalFlats <= 0 {
		return ErrInvalidFlatCount
	}
	switch s.CalculationMethod {
	case MethodSqftRate, MethodVariable:
	default:
		return ErrInvalidMethod
	}
	if s.SqftRate != nil && *s.SqftRate < 0 {
		return ErrInvalidAmount
	}
	if s.SinkingFund < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Flat is a billable unit in the society.
type Flat struct {
	// ID is the unique identifier for the flat (UUID format).
	ID string

	// Number is the human-facing flat number (e.g. "A-101").
	Number string

	// AreaSqft is the floor area in square feet.
	AreaSqft float64

	// Occupants is the number of residents living in the flat.
	Occupants int

	// OwnerName and OwnerPhone identify the owner for bill delivery.
	OwnerName  string
	OwnerPhone string

	// CreatedAt is the Unix timestamp when the flat was onboarded.
	CreatedAt int64
}

func (f Flat) Validate() error {
	if strings.TrimSpace(f.Number) == "" {
		return ErrEmptyFlatNumber
	}
	if f.AreaSqft <= 0 {
		return ErrInvalidArea
	}
	if f.Occupants < 0 {
		return ErrNegativeOccupants
	}
	return nil
}

// FixedExpense is a named recurring cost with an independent lifecycle from
// flats and bills. Inactive expenses are excluded from aggregation.
type FixedExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Name describes the expense (e.g. "Security", "Lift AMC").
	Name string

	// Amount is the cost per occurrence of Frequency.
	Amount float64

	// Frequency is how often the expense recurs.
	Frequency ExpenseFrequency

	// AccountCode optionally links the expense to a chart-of-accounts
	// head for reporting. Empty means uncategorized.
	AccountCode string

	// Active controls whether the expense participates in aggregation.
	Active bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

func (e FixedExpense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyExpenseName
	}
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	switch e.Frequency {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
	default:
		return ErrInvalidFrequency
	}
	return nil
}

// WaterExpense records the aggregate water cost for one billing period.
// At most one record exists per period; it is a required input for the
// variable method and ignored by the fixed-rate method.
type WaterExpense struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// Period is the billing cycle this record belongs to.
	Period Period

	// TankerCharges, GovernmentCharges and OtherCharges are the cost
	// components for the period.
	TankerCharges     float64
	GovernmentCharges float64
	OtherCharges      float64

	// TotalOccupants is the society-wide occupant count for the period.
	TotalOccupants int

	// PerOccupantCharge is the derived charge per resident
	// (total cost / total occupants).
	PerOccupantCharge float64

	// CreatedAt is the Unix timestamp when the record was entered.
	CreatedAt int64
}

// TotalCharges returns the sum of the water cost components.
func (w WaterExpense) TotalCharges() float64 {
	return w.TankerCharges + w.GovernmentCharges + w.OtherCharges
}

func (w WaterExpense) Validate() error {
	if err := w.Period.Validate(); err != nil {
		return err
	}
	if w.TankerCharges < 0 || w.GovernmentCharges < 0 || w.OtherCharges < 0 {
		return ErrInvalidAmount
	}
	if w.TotalOccupants <= 0 {
		return ErrNoOccupantTotal
	}
	return nil
}
