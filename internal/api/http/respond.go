package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
)

type errorResponse struct {
	Error       string  `json:"error"`
	Code        string  `json:"code"`
	ConflictIDs []int32 `json:"conflict_ids,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the engine's typed failures onto HTTP statuses and stable
// machine-readable codes. Conflicting reservation ids ride along so callers
// can display them.
func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.BookingConflictError
		invalidErr    *domain.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Code: "VALIDATION_ERROR"})
	case errors.As(err, &conflictErr):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: conflictErr.Error(), Code: "BOOKING_CONFLICT", ConflictIDs: conflictErr.ConflictIDs,
		})
	case errors.As(err, &invalidErr):
		respondJSON(w, http.StatusConflict, errorResponse{Error: invalidErr.Error(), Code: "INVALID_TRANSITION"})
	case errors.Is(err, domain.ErrStaleWrite):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "STALE_WRITE"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Code: "FORBIDDEN"})
	case errors.Is(err, domain.ErrMaintenanceBlocked):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "MAINTENANCE_BLOCKED"})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "INTERNAL"})
	}
}
