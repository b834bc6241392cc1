package server

import (
	"net/http"

	"github.com/societyhub/backend/internal/models"
)

type settingsPayload struct {
	TotalFlats        int                      `json:"total_flats"`
	CalculationMethod models.CalculationMethod `json:"calculation_method"`
	SqftRate          *float64                 `json:"sqft_rate,omitempty"`
	SinkingFund       float64                  `json:"sinking_fund"`
	UpdatedAt         int64                    `json:"updated_at,omitempty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.society.Settings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{
		TotalFlats:        settings.TotalFlats,
		CalculationMethod: settings.CalculationMethod,
		SqftRate:          settings.SqftRate,
		SinkingFund:       settings.SinkingFund,
		UpdatedAt:         settings.UpdatedAt,
	})
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	settings := &models.ApartmentSettings{
		TotalFlats:        req.TotalFlats,
		CalculationMethod: req.CalculationMethod,
		SqftRate:          req.SqftRate,
		SinkingFund:       req.SinkingFund,
	}
	if err := s.society.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{
		TotalFlats:        settings.TotalFlats,
		CalculationMethod: settings.CalculationMethod,
		SqftRate:          settings.SqftRate,
		SinkingFund:       settings.SinkingFund,
		UpdatedAt:         settings.UpdatedAt,
	})
}

type flatPayload struct {
	ID         string  `json:"id,omitempty"`
	Number     string  `json:"number"`
	AreaSqft   float64 `json:"area_sqft"`
	Occupants  int     `json:"occupants"`
	OwnerName  string  `json:"owner_name,omitempty"`
	OwnerPhone string  `json:"owner_phone,omitempty"`
}

func toFlatPayload(f models.Flat) flatPayload {
	return flatPayload{
		ID:         f.ID,
		Number:     f.Number,
		AreaSqft:   f.AreaSqft,
		Occupants:  f.Occupants,
		OwnerName:  f.OwnerName,
		OwnerPhone: f.OwnerPhone,
	}
}

func (p flatPayload) toModel() models.Flat {
	return models.Flat{
		ID:         p.ID,
		Number:     p.Number,
		AreaSqft:   p.AreaSqft,
		Occupants:  p.Occupants,
		OwnerName:  p.OwnerName,
		OwnerPhone: p.OwnerPhone,
	}
}

func (s *Server) handleCreateFlat(w http.ResponseWriter, r *http.Request) {
	var req flatPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	flat := req.toModel()
	flat.ID = ""
	if err := s.society.CreateFlat(r.Context(), &flat); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFlatPayload(flat))
}

func (s *Server) handleListFlats(w http.ResponseWriter, r *http.Request) {
	flats, err := s.society.ListFlats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]flatPayload, 0, len(flats))
	for _, f := range flats {
		out = append(out, toFlatPayload(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetFlat(w http.ResponseWriter, r *http.Request) {
	flat, err := s.society.GetFlat(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlatPayload(*flat))
}

func (s *Server) handleUpdateFlat(w http.ResponseWriter, r *http.Request) {
	var req flatPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	flat := req.toModel()
	flat.ID = r.PathValue("id")
	if err := s.society.UpdateFlat(r.Context(), &flat); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFlatPayload(flat))
}

func (s *Server) handleDeleteFlat(w http.ResponseWriter, r *http.Request) {
	if err := s.society.DeleteFlat(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type expensePayload struct {
	ID          string                  `json:"id,omitempty"`
	Name        string                  `json:"name"`
	Amount      float64                 `json:"amount"`
	Frequency   models.ExpenseFrequency `json:"frequency"`
	AccountCode string                  `json:"account_code,omitempty"`
	Active      bool                    `json:"active"`
}

func toExpensePayload(e models.FixedExpense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		Name:        e.Name,
		Amount:      e.Amount,
		Frequency:   e.Frequency,
		AccountCode: e.AccountCode,
		Active:      e.Active,
	}
}

func (p expensePayload) toModel() models.FixedExpense {
	return models.FixedExpense{
		ID:          p.ID,
		Name:        p.Name,
		Amount:      p.Amount,
		Frequency:   p.Frequency,
		AccountCode: p.AccountCode,
		Active:      p.Active,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expensePayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	expense := req.toModel()
	expense.ID = ""
	if err := s.society.CreateFixedExpense(r.Context(), &expense); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpensePayload(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.society.ListFixedExpenses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]expensePayload, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpensePayload(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expensePayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	expense := req.toModel()
	expense.ID = r.PathValue("id")
	if err := s.society.UpdateFixedExpense(r.Context(), &expense); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpensePayload(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.society.DeleteFixedExpense(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type waterPayload struct {
	Period            models.Period `json:"period"`
	TankerCharges     float64       `json:"tanker_charges"`
	GovernmentCharges float64       `json:"government_charges"`
	OtherCharges      float64       `json:"other_charges"`
	TotalOccupants    int           `json:"total_occupants"`
	PerOccupantCharge float64       `json:"per_occupant_charge,omitempty"`
}

func (s *Server) handleEnterWaterExpense(w http.ResponseWriter, r *http.Request) {
	var req waterPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	expense := &models.WaterExpense{
		Period:            req.Period,
		TankerCharges:     req.TankerCharges,
		GovernmentCharges: req.GovernmentCharges,
		OtherCharges:      req.OtherCharges,
		TotalOccupants:    req.TotalOccupants,
	}
	if err := s.society.EnterWaterExpense(r.Context(), expense); err != nil {
		writeError(w, r, err)
		return
	}
	req.PerOccupantCharge = expense.PerOccupantCharge
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleGetWaterExpense(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	expense, err := s.society.WaterExpense(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, waterPayload{
		Period:            expense.Period,
		TankerCharges:     expense.TankerCharges,
		GovernmentCharges: expense.GovernmentCharges,
		OtherCharges:      expense.OtherCharges,
		TotalOccupants:    expense.TotalOccupants,
		PerOccupantCharge: expense.PerOccupantCharge,
	})
}
