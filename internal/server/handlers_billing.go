package server

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
)

type billPayload struct {
	ID             string                   `json:"id"`
	FlatID         string                   `json:"flat_id"`
	FlatNumber     string                   `json:"flat_number"`
	Period         models.Period            `json:"period"`
	Method         models.CalculationMethod `json:"method"`
	SqftCharges    float64                  `json:"sqft_charges"`
	WaterCharges   float64                  `json:"water_charges"`
	FixedCharges   float64                  `json:"fixed_charges"`
	SinkingCharges float64                  `json:"sinking_charges"`
	TotalAmount    float64                  `json:"total_amount"`
	Breakdown      json.RawMessage          `json:"breakdown"`
	Explanation    string                   `json:"explanation"`
	Status         models.BillStatus        `json:"status"`
	GeneratedAt    int64                    `json:"generated_at"`
}

func toBillPayload(b models.MaintenanceBill) billPayload {
	return billPayload{
		ID:             b.ID,
		FlatID:         b.FlatID,
		FlatNumber:     b.FlatNumber,
		Period:         b.Period,
		Method:         b.Method,
		SqftCharges:    b.SqftCharges,
		WaterCharges:   b.WaterCharges,
		FixedCharges:   b.FixedCharges,
		SinkingCharges: b.SinkingCharges,
		TotalAmount:    b.TotalAmount,
		Breakdown:      json.RawMessage(b.BreakdownJSON),
		Explanation:    b.Explanation,
		Status:         b.Status,
		GeneratedAt:    b.GeneratedAt,
	}
}

func toBillPayloads(bills []models.MaintenanceBill) []billPayload {
	out := make([]billPayload, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillPayload(b))
	}
	return out
}

type generateBillsRequest struct {
	Period models.Period `json:"period"`
}

func (s *Server) handleGenerateBills(w http.ResponseWriter, r *http.Request) {
	var req generateBillsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	bills, err := s.billing.GenerateBills(r.Context(), req.Period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBillPayloads(bills))
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Residents only see their own flat's bill for the period.
	if middleware.GetRole(r.Context()) != models.RoleAdmin {
		flatID := middleware.GetFlatID(r.Context())
		bills, err := s.billing.BillsForFlat(r.Context(), flatID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var own []models.MaintenanceBill
		for _, b := range bills {
			if b.Period == period {
				own = append(own, b)
			}
		}
		writeJSON(w, http.StatusOK, toBillPayloads(own))
		return
	}

	bills, err := s.billing.BillsForPeriod(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillPayloads(bills))
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.billing.GetBill(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !s.canSeeBill(r, bill.FlatID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}
	writeJSON(w, http.StatusOK, toBillPayload(*bill))
}

func (s *Server) handleFlatBills(w http.ResponseWriter, r *http.Request) {
	flatID := r.PathValue("id")
	if !s.canSeeBill(r, flatID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}
	bills, err := s.billing.BillsForFlat(r.Context(), flatID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillPayloads(bills))
}

// canSeeBill allows admins everything and residents their own flat only.
func (s *Server) canSeeBill(r *http.Request, flatID string) bool {
	if middleware.GetRole(r.Context()) == models.RoleAdmin {
		return true
	}
	return middleware.GetFlatID(r.Context()) == flatID
}
