package service

import (
	"context"
	"fmt"

	"github.com/societyhub/backend/internal/accounts"
	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/storage"
)

// CollectionSummary is the monthly collection report for administrators.
type CollectionSummary struct {
	Period      models.Period `json:"period"`
	BillCount   int           `json:"bill_count"`
	TotalBilled float64       `json:"total_billed"`
	TotalPaid   float64       `json:"total_paid"`
	TotalDue    float64       `json:"total_due"`

	// ByMethod breaks the billed total down by calculation method.
	ByMethod map[string]float64 `json:"by_method"`

	// ExpenseHeads lists the period's fixed expenses at monthly rates,
	// labelled from the chart of accounts.
	ExpenseHeads []ExpenseHeadLine `json:"expense_heads"`
}

// ExpenseHeadLine is one labelled expense row in the collection report.
type ExpenseHeadLine struct {
	AccountCode string  `json:"account_code"`
	Label       string  `json:"label"`
	Monthly     float64 `json:"monthly"`
}

// ReportService assembles admin-facing summaries from stored bills and
// expenses.
type ReportService struct {
	store storage.Store
	chart *accounts.Chart
}

// NewReportService creates a report service over the given chart of
// accounts.
func NewReportService(store storage.Store, chart *accounts.Chart) *ReportService {
	return &ReportService{store: store, chart: chart}
}

// MonthlyCollection summarizes a period's generated bills and the expense
// heads behind them. A period with no generated bills yields an empty
// summary, not an error.
func (s *ReportService) MonthlyCollection(ctx context.Context, period models.Period) (*CollectionSummary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	summary := &CollectionSummary{
		Period:   period,
		ByMethod: make(map[string]float64),
	}
	for _, bill := range bills {
		summary.BillCount++
		summary.TotalBilled += bill.TotalAmount
		summary.ByMethod[string(bill.Method)] += bill.TotalAmount
		if bill.Status == models.BillStatusPaid {
			summary.TotalPaid += bill.TotalAmount
		} else {
			summary.TotalDue += bill.TotalAmount
		}
	}

	expenses, err := s.store.ListFixedExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	// Group active expenses by account head at their monthly-equivalent
	// amounts, so quarterly and annual costs report at the same cadence
	// as billing.
	byCode := make(map[string]float64)
	var codes []string
	for _, expense := range expenses {
		monthly := billing.MonthlyEquivalent(expense)
		if monthly == 0 {
			continue
		}
		if _, seen := byCode[expense.AccountCode]; !seen {
			codes = append(codes, expense.AccountCode)
		}
		byCode[expense.AccountCode] += monthly
	}
	for _, code := range codes {
		label := s.chart.Label(code)
		if code == "" {
			label = "Uncategorized"
		}
		summary.ExpenseHeads = append(summary.ExpenseHeads, ExpenseHeadLine{
			AccountCode: code,
			Label:       label,
			Monthly:     byCode[code],
		})
	}

	return summary, nil
}
