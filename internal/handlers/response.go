package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/orderpro/marketplace/internal/market"
)

// envelope is the uniform response shape: a success flag, an optional
// payload under an operation-specific key, and a message on failure.
type envelope map[string]any

// respondJSON writes data as JSON with the given status.
func respondJSON(w http.ResponseWriter, statusCode int, data envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondOK writes a success envelope carrying payload under key.
func respondOK(w http.ResponseWriter, key string, payload any) {
	respondJSON(w, http.StatusOK, envelope{"success": true, key: payload})
}

// respondError maps a service error to its HTTP status and writes the
// failure envelope. Unclassified errors become an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	status := statusForKind(market.KindOf(err))
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		message = "internal error"
	}
	respondJSON(w, status, envelope{"success": false, "message": message})
}

func statusForKind(kind market.Kind) int {
	switch kind {
	case market.KindValidation:
		return http.StatusBadRequest
	case market.KindUnauthenticated:
		return http.StatusUnauthorized
	case market.KindForbidden:
		return http.StatusForbidden
	case market.KindNotFound:
		return http.StatusNotFound
	case market.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
