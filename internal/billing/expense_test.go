package billing

import (
	"math"
	"testing"

	"github.com/societyhub/backend/internal/models"
)

func TestAggregateMonthlyFixedExpenses(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.FixedExpense
		want     float64
	}{
		{
			name:     "empty set",
			expenses: nil,
			want:     0,
		},
		{
			name: "monthly passes through",
			expenses: []models.FixedExpense{
				{Name: "Security", Amount: 30000, Frequency: models.FrequencyMonthly, Active: true},
			},
			want: 30000,
		},
		{
			name: "quarterly contributes a third",
			expenses: []models.FixedExpense{
				{Name: "Pest control", Amount: 9000, Frequency: models.FrequencyQuarterly, Active: true},
			},
			want: 3000,
		},
		{
			name: "annual contributes a twelfth",
			expenses: []models.FixedExpense{
				{Name: "Lift AMC", Amount: 24000, Frequency: models.FrequencyAnnual, Active: true},
			},
			want: 2000,
		},
		{
			name: "mixed frequencies sum",
			expenses: []models.FixedExpense{
				{Name: "Security", Amount: 30000, Frequency: models.FrequencyMonthly, Active: true},
				{Name: "Pest control", Amount: 9000, Frequency: models.FrequencyQuarterly, Active: true},
				{Name: "Lift AMC", Amount: 144000, Frequency: models.FrequencyAnnual, Active: true},
			},
			want: 45000,
		},
		{
			name: "inactive expenses contribute nothing regardless of amount",
			expenses: []models.FixedExpense{
				{Name: "Security", Amount: 30000, Frequency: models.FrequencyMonthly, Active: true},
				{Name: "Old contract", Amount: 999999, Frequency: models.FrequencyMonthly, Active: false},
			},
			want: 30000,
		},
		{
			name: "unknown frequency contributes zero",
			expenses: []models.FixedExpense{
				{Name: "Security", Amount: 30000, Frequency: models.FrequencyMonthly, Active: true},
				{Name: "Oddball", Amount: 5000, Frequency: "weekly", Active: true},
			},
			want: 30000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateMonthlyFixedExpenses(tt.expenses)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("AggregateMonthlyFixedExpenses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	active := models.FixedExpense{Name: "Water pump AMC", Amount: 1200, Frequency: models.FrequencyAnnual, Active: true}
	if got := MonthlyEquivalent(active); math.Abs(got-100) > 0.01 {
		t.Errorf("MonthlyEquivalent(annual 1200) = %v, want 100", got)
	}

	inactive := active
	inactive.Active = false
	if got := MonthlyEquivalent(inactive); got != 0 {
		t.Errorf("MonthlyEquivalent(inactive) = %v, want 0", got)
	}
}
