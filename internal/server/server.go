// Package server exposes the society backend over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/service"
)

// Server holds the services behind the HTTP handlers.
type Server struct {
	auth       *service.AuthService
	society    *service.SocietyService
	billing    *service.BillingService
	complaints *service.ComplaintService
	reports    *service.ReportService
	jwtManager *auth.JWTManager
}

// New creates a server over the given services.
func New(
	authSvc *service.AuthService,
	societySvc *service.SocietyService,
	billingSvc *service.BillingService,
	complaintSvc *service.ComplaintService,
	reportSvc *service.ReportService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:       authSvc,
		society:    societySvc,
		billing:    billingSvc,
		complaints: complaintSvc,
		reports:    reportSvc,
		jwtManager: jwtManager,
	}
}

// Routes builds the API routing table. Admin-only routes mutate
// configuration or act on the whole society; authenticated routes serve
// both roles with resident scoping applied inside the handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(s.jwtManager, h)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(s.jwtManager, h)
	}

	mux.Handle("GET /api/v1/settings", authed(s.handleGetSettings))
	mux.Handle("PUT /api/v1/settings", admin(s.handleSaveSettings))

	mux.Handle("POST /api/v1/flats", admin(s.handleCreateFlat))
	mux.Handle("GET /api/v1/flats", authed(s.handleListFlats))
	mux.Handle("GET /api/v1/flats/{id}", authed(s.handleGetFlat))
	mux.Handle("PUT /api/v1/flats/{id}", admin(s.handleUpdateFlat))
	mux.Handle("DELETE /api/v1/flats/{id}", admin(s.handleDeleteFlat))
	mux.Handle("GET /api/v1/flats/{id}/bills", authed(s.handleFlatBills))

	mux.Handle("POST /api/v1/expenses", admin(s.handleCreateExpense))
	mux.Handle("GET /api/v1/expenses", admin(s.handleListExpenses))
	mux.Handle("PUT /api/v1/expenses/{id}", admin(s.handleUpdateExpense))
	mux.Handle("DELETE /api/v1/expenses/{id}", admin(s.handleDeleteExpense))

	mux.Handle("PUT /api/v1/water", admin(s.handleEnterWaterExpense))
	mux.Handle("GET /api/v1/water", admin(s.handleGetWaterExpense))

	mux.Handle("POST /api/v1/bills/generate", admin(s.handleGenerateBills))
	mux.Handle("GET /api/v1/bills", authed(s.handleListBills))
	mux.Handle("GET /api/v1/bills/{id}", authed(s.handleGetBill))

	mux.Handle("POST /api/v1/complaints", authed(s.handleRaiseComplaint))
	mux.Handle("GET /api/v1/complaints", authed(s.handleListComplaints))
	mux.Handle("GET /api/v1/complaints/{id}", authed(s.handleGetComplaint))
	mux.Handle("PUT /api/v1/complaints/{id}/status", admin(s.handleUpdateComplaintStatus))

	mux.Handle("GET /api/v1/reports/collection", admin(s.handleCollectionReport))

	return mux
}
