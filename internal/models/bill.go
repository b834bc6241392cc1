package models

// BillStatus tracks the payment lifecycle of a stored bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// MaintenanceBill is a generated maintenance charge for one (flat, period).
// It is immutable once stored; regenerating a period replaces the whole batch.
type MaintenanceBill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// FlatID references the billed flat; FlatNumber is denormalized so a
	// bill remains readable even if the flat is later renumbered.
	FlatID     string
	FlatNumber string

	// Period is the billing cycle this bill covers.
	Period Period

	// Method records which calculation produced this bill.
	Method CalculationMethod

	// Component amounts. SqftCharges is set under sqft_rate;
	// WaterCharges, FixedCharges and SinkingCharges under variable.
	SqftCharges    float64
	WaterCharges   float64
	FixedCharges   float64
	SinkingCharges float64

	// TotalAmount always equals the sum of the components above.
	TotalAmount float64

	// BreakdownJSON is the machine-structured derivation of every component,
	// serialized at generation time.
	BreakdownJSON string

	// Explanation is the resident-facing multi-line derivation text.
	Explanation string

	// Status is the payment status.
	Status BillStatus

	// GeneratedAt is the Unix timestamp when the batch was generated.
	GeneratedAt int64
}
