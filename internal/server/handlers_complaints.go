package server

import (
	"net/http"

	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
)

type complaintPayload struct {
	ID        string                 `json:"id,omitempty"`
	RaisedBy  string                 `json:"raised_by,omitempty"`
	FlatID    string                 `json:"flat_id,omitempty"`
	Category  string                 `json:"category,omitempty"`
	Subject   string                 `json:"subject"`
	Body      string                 `json:"body,omitempty"`
	Status    models.ComplaintStatus `json:"status,omitempty"`
	CreatedAt int64                  `json:"created_at,omitempty"`
	UpdatedAt int64                  `json:"updated_at,omitempty"`
}

func toComplaintPayload(c models.Complaint) complaintPayload {
	return complaintPayload{
		ID:        c.ID,
		RaisedBy:  c.RaisedBy,
		FlatID:    c.FlatID,
		Category:  c.Category,
		Subject:   c.Subject,
		Body:      c.Body,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (s *Server) handleRaiseComplaint(w http.ResponseWriter, r *http.Request) {
	var req complaintPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	complaint := models.Complaint{
		RaisedBy: middleware.GetUserID(r.Context()),
		FlatID:   middleware.GetFlatID(r.Context()),
		Category: req.Category,
		Subject:  req.Subject,
		Body:     req.Body,
	}
	if err := s.complaints.Raise(r.Context(), &complaint); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComplaintPayload(complaint))
}

// handleListComplaints serves the whole board to admins and a resident's
// own complaints otherwise.
func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	var (
		complaints []models.Complaint
		err        error
	)
	if middleware.GetRole(r.Context()) == models.RoleAdmin {
		complaints, err = s.complaints.List(r.Context())
	} else {
		complaints, err = s.complaints.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]complaintPayload, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, toComplaintPayload(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := s.complaints.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if middleware.GetRole(r.Context()) != models.RoleAdmin && complaint.RaisedBy != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}
	writeJSON(w, http.StatusOK, toComplaintPayload(*complaint))
}

type complaintStatusRequest struct {
	Status models.ComplaintStatus `json:"status"`
}

func (s *Server) handleUpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	var req complaintStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	id := r.PathValue("id")
	if err := s.complaints.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	complaint, err := s.complaints.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplaintPayload(*complaint))
}
