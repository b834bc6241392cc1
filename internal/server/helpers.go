package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/billing"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/service"
	"github.com/societyhub/backend/internal/storage"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps service errors onto HTTP statuses: input validation to
// 400, configuration the admin must fix before generation can proceed to
// 422, missing records to 404.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"url", r.URL.Path,
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, billing.ErrWaterExpenseMissing),
		errors.Is(err, billing.ErrRateNotConfigured),
		errors.Is(err, billing.ErrUnknownMethod),
		errors.Is(err, billing.ErrNoOccupants),
		errors.Is(err, billing.ErrNoFlatsConfigured),
		errors.Is(err, service.ErrNoFlats):
		return http.StatusUnprocessableEntity
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		models.ErrInvalidMonth,
		models.ErrInvalidYear,
		models.ErrInvalidMethod,
		models.ErrInvalidFlatCount,
		models.ErrInvalidArea,
		models.ErrNegativeOccupants,
		models.ErrEmptyFlatNumber,
		models.ErrEmptyExpenseName,
		models.ErrInvalidAmount,
		models.ErrInvalidFrequency,
		models.ErrNoOccupantTotal,
		models.ErrEmptySubject,
		models.ErrInvalidComplaintStatus,
		billing.ErrNegativeCharge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// periodFromQuery reads the month and year query parameters.
func periodFromQuery(r *http.Request) (models.Period, error) {
	var period models.Period
	month, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("month")))
	if err != nil {
		return period, models.ErrInvalidMonth
	}
	year, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("year")))
	if err != nil {
		return period, models.ErrInvalidYear
	}
	period = models.Period{Month: month, Year: year}
	return period, period.Validate()
}
