package notification

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/http/middleware"
	"github.com/boardinghub/boardinghub/internal/notification"
)

type Handler struct {
	svc *notification.Service
}

func NewHandler(svc *notification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/{id}/read", h.markRead)
	r.Post("/read-all", h.markAllRead)
}

type notificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Kind      notification.Kind `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	RefID     *uuid.UUID        `json:"ref_id,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	items, err := h.svc.List(r.Context(), middleware.UserID(r.Context()), unreadOnly)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]notificationResponse, len(items))
	for i, n := range items {
		resp[i] = notificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			RefID:     n.RefID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkRead(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkAllRead(r.Context(), middleware.UserID(r.Context())); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
