package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-inbox-api/internal/application/inbox"
	"github.com/go-inbox-api/internal/domain"
	"github.com/go-inbox-api/internal/transport/http/middleware"
)

// CreateMessageRequest is the creation payload: one message plus the
// recipients it fans out to.
type CreateMessageRequest struct {
	Message *domain.Message `json:"message"`
	LanIDs  []string        `json:"lanIds"`
}

// MessageHandler handles inbox message endpoints.
type MessageHandler struct {
	svc inbox.Service
}

func NewMessageHandler(svc inbox.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Get serves the trusted-service read by message id.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.Get(r.Context(), chi.URLParam(r, "msgID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: []domain.Message{*msg}})
}

// List serves the trusted-service listing for any recipient.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ParseExpirationFilter(r.URL.Query().Get("active"))
	msgs, err := h.svc.List(r.Context(), chi.URLParam(r, "lanID"), filter)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: msgs})
}

// Create validates and fans out one message to every unique recipient.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to read JSON")
		return
	}
	created, err := h.svc.Create(r.Context(), req.Message, req.LanIDs)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: created})
}

// Delete serves the trusted-service delete by message id.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.Delete(r.Context(), chi.URLParam(r, "msgID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: []domain.Message{*msg}})
}

// GetOwn reads one message from the session user's own inbox.
func (h *MessageHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	msg, err := h.svc.GetForRecipient(r.Context(), claims.LanID, chi.URLParam(r, "lanID"), chi.URLParam(r, "msgID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: []domain.Message{*msg}})
}

// ListOwn lists the session user's own inbox.
func (h *MessageHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	filter := domain.ParseExpirationFilter(r.URL.Query().Get("active"))
	msgs, err := h.svc.ListForRecipient(r.Context(), claims.LanID, chi.URLParam(r, "lanID"), filter)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: msgs})
}

// DeleteOwn removes one message from the session user's own inbox.
// Task messages are refused here; only the trusted path may remove them.
func (h *MessageHandler) DeleteOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	msg, err := h.svc.DeleteForRecipient(r.Context(), claims.LanID, chi.URLParam(r, "lanID"), chi.URLParam(r, "msgID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Messages: []domain.Message{*msg}})
}

// DeleteExpiredOwn removes every expired Information message from the session
// user's own inbox.
func (h *MessageHandler) DeleteExpiredOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, err := h.svc.DeleteExpired(r.Context(), claims.LanID, chi.URLParam(r, "lanID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletedEnvelope{Deleted: count})
}
