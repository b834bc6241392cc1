// Package billing implements the maintenance-billing calculation engine:
// deriving each flat's monthly charge from society settings, shared water
// costs and fixed recurring expenses, under one of two billing strategies.
//
// Everything in this package is a pure function of its inputs. Callers are
// expected to acquire a consistent snapshot of settings, expenses and the
// period's water record before invoking the engine.
package billing

import (
	"github.com/societyhub/backend/internal/models"
)

// MonthlyEquivalent returns the monthly-equivalent amount of one fixed
// expense: monthly amounts pass through, quarterly amounts contribute a
// third, annual amounts a twelfth. Inactive expenses contribute zero.
//
// An unrecognized frequency also contributes zero rather than failing;
// the data-entry boundary validates the frequency enum.
func MonthlyEquivalent(e models.FixedExpense) float64 {
	if !e.Active {
		return 0
	}
	switch e.Frequency {
	case models.FrequencyMonthly:
		return e.Amount
	case models.FrequencyQuarterly:
		return e.Amount / 3
	case models.FrequencyAnnual:
		return e.Amount / 12
	default:
		return 0
	}
}

// AggregateMonthlyFixedExpenses reduces a set of fixed expenses to a single
// monthly-equivalent total. No rounding is applied here; rounding is a
// presentation concern in the bill explanation text.
func AggregateMonthlyFixedExpenses(expenses []models.FixedExpense) float64 {
	var total float64
	for _, e := range expenses {
		total += MonthlyEquivalent(e)
	}
	return total
}
