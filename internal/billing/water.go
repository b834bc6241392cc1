package billing

import (
	"errors"
)

var (
	// ErrNoOccupants is returned when a per-occupant division would divide
	// by zero. The caller must never substitute a silently-zero charge.
	ErrNoOccupants = errors.New("total occupants must be greater than zero")

	// ErrNegativeCharge is returned when a water cost component is negative.
	ErrNegativeCharge = errors.New("water charges cannot be negative")
)

// WaterAllocation is a period's aggregate water cost converted to a
// per-occupant rate, shared by every flat billed under the variable method.
type WaterAllocation struct {
	TotalCharges      float64
	TotalOccupants    int
	PerOccupantCharge float64
}

// AllocateWaterCost converts a period's aggregate water expense into a
// per-occupant rate. It fails explicitly when totalOccupants is zero;
// a non-finite rate must never propagate into a bill.
func AllocateWaterCost(tanker, government, other float64, totalOccupants int) (float64, error) {
	if tanker < 0 || government < 0 || other < 0 {
		return 0, ErrNegativeCharge
	}
	if totalOccupants <= 0 {
		return 0, ErrNoOccupants
	}
	total := tanker + government + other
	return total / float64(totalOccupants), nil
}

// NewWaterAllocation validates the inputs and returns the full allocation,
// keeping the aggregate figures alongside the derived rate for breakdowns.
func NewWaterAllocation(tanker, government, other float64, totalOccupants int) (WaterAllocation, error) {
	perOccupant, err := AllocateWaterCost(tanker, government, other, totalOccupants)
	if err != nil {
		return WaterAllocation{}, err
	}
	return WaterAllocation{
		TotalCharges:      tanker + government + other,
		TotalOccupants:    totalOccupants,
		PerOccupantCharge: perOccupant,
	}, nil
}
