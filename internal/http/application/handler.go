package application

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/http/middleware"
	"github.com/boardinghub/boardinghub/internal/property"
	"github.com/boardinghub/boardinghub/internal/tenantapp"
	"github.com/boardinghub/boardinghub/internal/user"
)

type Handler struct {
	svc        *tenantapp.Service
	users      *user.Service
	properties *property.Service
}

func NewHandler(svc *tenantapp.Service, users *user.Service, properties *property.Service) *Handler {
	return &Handler{svc: svc, users: users, properties: properties}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.apply)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenantapp.ErrNotFound):
		http.Error(w, "application not found", http.StatusNotFound)
	case errors.Is(err, property.ErrRoomNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, tenantapp.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, tenantapp.ErrDecided),
		errors.Is(err, tenantapp.ErrRoomTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type applicationResponse struct {
	ID           uuid.UUID        `json:"id"`
	TenantID     uuid.UUID        `json:"tenant_id"`
	LandlordID   uuid.UUID        `json:"landlord_id"`
	PropertyID   uuid.UUID        `json:"property_id"`
	RoomID       uuid.UUID        `json:"room_id"`
	TenantName   string           `json:"tenant_name"`
	Message      string           `json:"message,omitempty"`
	Status       tenantapp.Status `json:"status"`
	LeaseStart   *time.Time       `json:"lease_start,omitempty"`
	LeaseEnd     *time.Time       `json:"lease_end,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	DecidedAt    *time.Time       `json:"decided_at,omitempty"`
	DecisionNote string           `json:"decision_note,omitempty"`
}

func toResponse(app *tenantapp.Application) applicationResponse {
	return applicationResponse{
		ID:           app.ID,
		TenantID:     app.TenantID,
		LandlordID:   app.LandlordID,
		PropertyID:   app.PropertyID,
		RoomID:       app.RoomID,
		TenantName:   app.Tenant.Name,
		Message:      app.Message,
		Status:       app.Status,
		LeaseStart:   app.LeaseStart,
		LeaseEnd:     app.LeaseEnd,
		CreatedAt:    app.CreatedAt,
		DecidedAt:    app.DecidedAt,
		DecisionNote: app.DecisionNote,
	}
}

type applyRequest struct {
	RoomID  uuid.UUID `json:"room_id"`
	Message string    `json:"message,omitempty"`
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tenantID := middleware.UserID(r.Context())

	applicant, err := h.users.Get(r.Context(), tenantID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	room, err := h.properties.GetRoom(r.Context(), req.RoomID)
	if err != nil {
		respondError(w, err)
		return
	}

	if room.Status != property.RoomVacant {
		http.Error(w, "room is not vacant", http.StatusConflict)
		return
	}

	owner, err := h.properties.GetProperty(r.Context(), room.PropertyID)
	if err != nil {
		respondError(w, err)
		return
	}

	app, err := h.svc.Apply(r.Context(), tenantapp.ApplyParams{
		TenantID:   tenantID,
		LandlordID: owner.OwnerID,
		PropertyID: room.PropertyID,
		RoomID:     room.ID,
		Tenant: tenantapp.Snapshot{
			Name:  applicant.Name,
			Email: applicant.Email,
			Phone: applicant.Phone,
		},
		Message: req.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toResponse(app))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := tenantapp.ListFilter{}

	callerID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) == string(user.RoleLandlord) {
		filter.LandlordID = &callerID
	} else {
		filter.TenantID = &callerID
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st := tenantapp.Status(s)
		filter.Status = &st
	}

	apps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]applicationResponse, len(apps))
	for i, app := range apps {
		resp[i] = toResponse(app)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	callerID := middleware.UserID(r.Context())
	if app.TenantID != callerID && app.LandlordID != callerID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, toResponse(app))
}

type approveRequest struct {
	LeaseStart *time.Time `json:"lease_start,omitempty"`
	LeaseEnd   *time.Time `json:"lease_end,omitempty"`
	Note       string     `json:"note,omitempty"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, err := h.svc.Approve(r.Context(), middleware.UserID(r.Context()), id, tenantapp.ApproveParams{
		LeaseStart: req.LeaseStart,
		LeaseEnd:   req.LeaseEnd,
		Note:       req.Note,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toResponse(app))
}

type rejectRequest struct {
	Note string `json:"note,omitempty"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, err := h.svc.Reject(r.Context(), middleware.UserID(r.Context()), id, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toResponse(app))
}
