// Package service provides the orchestration layer between the HTTP
// handlers, the billing engine and storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/notify"
	"github.com/societyhub/backend/internal/storage"
)

// ErrNoFlats is returned when generation is requested before any flat
// has been onboarded.
var ErrNoFlats = errors.New("no flats onboarded")

// BillingService generates and serves maintenance bills.
type BillingService struct {
	store     storage.Store
	publisher notify.Publisher
}

// NewBillingService creates a billing service. publisher may be nil when no
// broker is configured; events are then dropped.
func NewBillingService(store storage.Store, publisher notify.Publisher) *BillingService {
	return &BillingService{store: store, publisher: publisher}
}

// GenerateBills produces and persists the bill batch for a period.
//
// Inputs are read as one consistent snapshot, the engine runs over it, and
// the resulting batch atomically replaces any previously generated bills
// for the same period. Generation is all-or-nothing: on any error no bill
// is written.
func (s *BillingService) GenerateBills(ctx context.Context, period models.Period) ([]models.MaintenanceBill, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.store.GetBillingSnapshot(ctx, period)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("apartment settings not configured: %w", err)
		}
		return nil, fmt.Errorf("failed to load billing snapshot: %w", err)
	}
	if len(snapshot.Flats) == 0 {
		return nil, ErrNoFlats
	}

	drafts, err := billing.GenerateBills(snapshot.Flats, *snapshot.Settings, snapshot.Water, snapshot.Expenses, period)
	if err != nil {
		middleware.BillGenerationFailures.Inc()
		slog.Error("Bill generation failed",
			"period", period.String(),
			"method", snapshot.Settings.CalculationMethod,
			"error", err,
		)
		return nil, err
	}

	bills, err := billsFromDrafts(drafts)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceBillsForPeriod(ctx, period, bills); err != nil {
		return nil, fmt.Errorf("failed to persist bills: %w", err)
	}

	var totalBilled float64
	for _, bill := range bills {
		totalBilled += bill.TotalAmount
	}
	method := snapshot.Settings.CalculationMethod
	middleware.BillsGenerated.WithLabelValues(string(method)).Add(float64(len(bills)))

	slog.Info("Bills generated",
		"period", period.String(),
		"method", method,
		"bill_count", len(bills),
		"total_billed", totalBilled,
	)

	// Event publishing is best-effort; a broker outage must not fail a
	// batch that is already persisted.
	if s.publisher != nil {
		msg := notify.NewBillsGeneratedMessage(period, len(bills), totalBilled, method)
		if err := s.publisher.PublishBillsGenerated(ctx, msg); err != nil {
			slog.Warn("Failed to publish bills-generated event", "period", period.String(), "error", err)
		}
	}

	return bills, nil
}

// BillsForPeriod returns the generated batch for a period.
func (s *BillingService) BillsForPeriod(ctx context.Context, period models.Period) ([]models.MaintenanceBill, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.store.ListBillsForPeriod(ctx, period)
}

// BillsForFlat returns one flat's bill history, newest first.
func (s *BillingService) BillsForFlat(ctx context.Context, flatID string) ([]models.MaintenanceBill, error) {
	return s.store.ListBillsForFlat(ctx, flatID)
}

// GetBill returns one bill by ID.
func (s *BillingService) GetBill(ctx context.Context, id string) (*models.MaintenanceBill, error) {
	return s.store.GetBill(ctx, id)
}

// billsFromDrafts converts engine output into persistable bills,
// serializing each breakdown once at generation time.
func billsFromDrafts(drafts []billing.BillDraft) ([]models.MaintenanceBill, error) {
	now := time.Now().Unix()
	bills := make([]models.MaintenanceBill, 0, len(drafts))
	for _, draft := range drafts {
		breakdownJSON, err := json.Marshal(draft.Breakdown)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize breakdown for flat %s: %w", draft.FlatNumber, err)
		}
		bills = append(bills, models.MaintenanceBill{
			FlatID:         draft.FlatID,
			FlatNumber:     draft.FlatNumber,
			Period:         draft.Period,
			Method:         draft.Method,
			SqftCharges:    draft.SqftCharges,
			WaterCharges:   draft.WaterCharges,
			FixedCharges:   draft.FixedCharges,
			SinkingCharges: draft.SinkingCharges,
			TotalAmount:    draft.TotalAmount,
			BreakdownJSON:  string(breakdownJSON),
			Explanation:    draft.Breakdown.Explanation,
			Status:         models.BillStatusPending,
			GeneratedAt:    now,
		})
	}
	return bills, nil
}
