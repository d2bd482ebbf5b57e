package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-inbox-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// MessagesEnvelope wraps message payloads. Single-message responses reuse it
// with a one-element list, matching the legacy wire shape.
type MessagesEnvelope struct {
	Messages []domain.Message `json:"messages"`
	Error    string           `json:"error,omitempty"`
}

// ValidationEnvelope wraps a rejected request with its full violation list.
type ValidationEnvelope struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations"`
}

// DeletedEnvelope wraps bulk-deletion responses.
type DeletedEnvelope struct {
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain error conditions to HTTP statuses. Validation and
// not-found stay distinguishable; anything unexpected collapses to an opaque
// 500 with the cause logged, never echoed.
func httpError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ValidationEnvelope{
			Error:      "invalid form data",
			Violations: ve.Violations,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}
