package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/societyhub/backend/internal/models"
)

var (
	// ErrRateNotConfigured is returned when the fixed-rate method is
	// selected but no square-feet rate has been configured.
	ErrRateNotConfigured = errors.New("square feet rate not configured")

	// ErrNoFlatsConfigured is returned when proration denominators would
	// divide by a non-positive configured flat count.
	ErrNoFlatsConfigured = errors.New("total flats not configured")
)

// WaterBreakdown shows how a flat's water charge was derived.
type WaterBreakdown struct {
	TotalCharges      float64 `json:"total_charges"`
	TotalOccupants    int     `json:"total_occupants"`
	PerOccupantCharge float64 `json:"per_occupant_charge"`
	FlatOccupants     int     `json:"flat_occupants"`
	Charge            float64 `json:"charge"`
}

// ExpenseShare is one fixed expense's contribution to a single flat.
type ExpenseShare struct {
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthly_amount"`
	PerFlatShare  float64 `json:"per_flat_share"`
}

// Breakdown is the structured derivation of every number on a bill, plus a
// formatted explanation suitable for display to a resident. It is built once
// per bill and never mutated afterwards.
type Breakdown struct {
	// Fixed-rate method fields.
	AreaSqft float64 `json:"area_sqft,omitempty"`
	SqftRate float64 `json:"sqft_rate,omitempty"`

	// Variable method fields.
	Water          *WaterBreakdown `json:"water,omitempty"`
	ExpenseShares  []ExpenseShare  `json:"expense_shares,omitempty"`
	FixedPerFlat   float64         `json:"fixed_per_flat,omitempty"`
	SinkingPerFlat float64         `json:"sinking_per_flat,omitempty"`
	TotalFlats     int             `json:"total_flats,omitempty"`

	// Explanation is the resident-facing derivation text. Currency symbols
	// and two-decimal rounding appear only here, never in computed fields.
	Explanation string `json:"explanation"`
}

// BillDraft is the engine's output for one (flat, period): component amounts,
// total and breakdown. TotalAmount always equals the sum of the disclosed
// components. Persistence is the caller's concern.
type BillDraft struct {
	FlatID     string
	FlatNumber string
	Period     models.Period
	Method     models.CalculationMethod

	SqftCharges    float64
	WaterCharges   float64
	FixedCharges   float64
	SinkingCharges float64
	TotalAmount    float64

	Breakdown Breakdown
}

// BillCalculator computes one flat's maintenance bill for a period.
// Implementations are pure: identical inputs yield identical drafts.
type BillCalculator interface {
	// Method tags the bills this calculator produces.
	Method() models.CalculationMethod

	// Calculate produces the bill draft for a single flat.
	Calculate(flat models.Flat, period models.Period) (*BillDraft, error)
}

// FixedRateCalculator bills each flat a configured rate per square foot.
type FixedRateCalculator struct {
	rate float64
}

// NewFixedRateCalculator builds the fixed-rate strategy. A nil rate is a
// configuration error, not a zero-charge bill.
func NewFixedRateCalculator(rate *float64) (*FixedRateCalculator, error) {
	if rate == nil {
		return nil, ErrRateNotConfigured
	}
	if *rate < 0 {
		return nil, models.ErrInvalidAmount
	}
	return &FixedRateCalculator{rate: *rate}, nil
}

func (c *FixedRateCalculator) Method() models.CalculationMethod {
	return models.MethodSqftRate
}

func (c *FixedRateCalculator) Calculate(flat models.Flat, period models.Period) (*BillDraft, error) {
	if err := flat.Validate(); err != nil {
		return nil, err
	}
	sqftCharges := flat.AreaSqft * c.rate
	return &BillDraft{
		FlatID:      flat.ID,
		FlatNumber:  flat.Number,
		Period:      period,
		Method:      models.MethodSqftRate,
		SqftCharges: sqftCharges,
		TotalAmount: sqftCharges,
		Breakdown: Breakdown{
			AreaSqft: flat.AreaSqft,
			SqftRate: c.rate,
			Explanation: fmt.Sprintf("Area: %g sq ft × Rate: ₹%.2f = ₹%.2f",
				flat.AreaSqft, c.rate, sqftCharges),
		},
	}, nil
}

// VariableCalculator apportions the period's water cost by occupancy and
// splits fixed expenses and the sinking fund equally across the society's
// configured flat count.
type VariableCalculator struct {
	water       WaterAllocation
	shares      []ExpenseShare
	fixedTotal  float64
	sinkingFund float64
	totalFlats  int
}

// NewVariableCalculator builds the variable strategy, aggregating the fixed
// expenses once so the work is shared across every flat in the run.
func NewVariableCalculator(water WaterAllocation, expenses []models.FixedExpense, sinkingFund float64, totalFlats int) (*VariableCalculator, error) {
	if totalFlats <= 0 {
		return nil, ErrNoFlatsConfigured
	}
	if water.TotalOccupants <= 0 {
		return nil, ErrNoOccupants
	}
	if sinkingFund < 0 {
		return nil, models.ErrInvalidAmount
	}

	fixedTotal := AggregateMonthlyFixedExpenses(expenses)
	shares := make([]ExpenseShare, 0, len(expenses))
	for _, e := range expenses {
		if !e.Active {
			continue
		}
		monthly := MonthlyEquivalent(e)
		shares = append(shares, ExpenseShare{
			Name:          e.Name,
			MonthlyAmount: monthly,
			PerFlatShare:  monthly / float64(totalFlats),
		})
	}

	return &VariableCalculator{
		water:       water,
		shares:      shares,
		fixedTotal:  fixedTotal,
		sinkingFund: sinkingFund,
		totalFlats:  totalFlats,
	}, nil
}

func (c *VariableCalculator) Method() models.CalculationMethod {
	return models.MethodVariable
}

func (c *VariableCalculator) Calculate(flat models.Flat, period models.Period) (*BillDraft, error) {
	if err := flat.Validate(); err != nil {
		return nil, err
	}

	waterCharges := c.water.PerOccupantCharge * float64(flat.Occupants)
	fixedPerFlat := c.fixedTotal / float64(c.totalFlats)
	sinkingPerFlat := c.sinkingFund / float64(c.totalFlats)
	total := waterCharges + fixedPerFlat + sinkingPerFlat

	waterBreakdown := &WaterBreakdown{
		TotalCharges:      c.water.TotalCharges,
		TotalOccupants:    c.water.TotalOccupants,
		PerOccupantCharge: c.water.PerOccupantCharge,
		FlatOccupants:     flat.Occupants,
		Charge:            waterCharges,
	}

	return &BillDraft{
		FlatID:         flat.ID,
		FlatNumber:     flat.Number,
		Period:         period,
		Method:         models.MethodVariable,
		WaterCharges:   waterCharges,
		FixedCharges:   fixedPerFlat,
		SinkingCharges: sinkingPerFlat,
		TotalAmount:    total,
		Breakdown: Breakdown{
			Water:          waterBreakdown,
			ExpenseShares:  c.shares,
			FixedPerFlat:   fixedPerFlat,
			SinkingPerFlat: sinkingPerFlat,
			TotalFlats:     c.totalFlats,
			Explanation:    c.explain(flat, waterCharges, fixedPerFlat, sinkingPerFlat, total),
		},
	}, nil
}

// explain renders the step-by-step derivation for a resident, every amount
// to two decimal places.
func (c *VariableCalculator) explain(flat models.Flat, waterCharges, fixedPerFlat, sinkingPerFlat, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Water: ₹%.2f ÷ %d occupants = ₹%.2f per occupant × %d occupants = ₹%.2f\n",
		c.water.TotalCharges, c.water.TotalOccupants, c.water.PerOccupantCharge,
		flat.Occupants, waterCharges)
	for _, share := range c.shares {
		fmt.Fprintf(&b, "%s: ₹%.2f/month ÷ %d flats = ₹%.2f\n",
			share.Name, share.MonthlyAmount, c.totalFlats, share.PerFlatShare)
	}
	fmt.Fprintf(&b, "Fixed expenses: ₹%.2f ÷ %d flats = ₹%.2f\n",
		c.fixedTotal, c.totalFlats, fixedPerFlat)
	fmt.Fprintf(&b, "Sinking fund: ₹%.2f ÷ %d flats = ₹%.2f\n",
		c.sinkingFund, c.totalFlats, sinkingPerFlat)
	fmt.Fprintf(&b, "Total: ₹%.2f + ₹%.2f + ₹%.2f = ₹%.2f",
		waterCharges, fixedPerFlat, sinkingPerFlat, total)
	return b.String()
}
