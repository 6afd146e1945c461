package property

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
)

type Handler struct {
	svc *property.Service
}

func NewHandler(svc *property.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/rooms", h.listRooms)
	r.Post("/{id}/rooms", h.createRoom)
}

func (h *Handler) RoomRoutes(r chi.Router) {
	r.Get("/{id}", h.getRoom)
	r.Patch("/{id}", h.updateRoom)
	r.Patch("/{id}/status", h.setRoomStatus)
	r.Delete("/{id}", h.deleteRoom)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, property.ErrNotFound):
		http.Error(w, "property not found", http.StatusNotFound)
	case errors.Is(err, property.ErrRoomNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
	case errors.Is(err, property.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, property.ErrRoomOccupied),
		errors.Is(err, property.ErrHasOccupiedRooms),
		errors.Is(err, property.ErrRoomNotVacant):
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

type propertyResponse struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	DueDays    int        `json:"due_days"`
	TotalRooms int        `json:"total_rooms"`
	Occupied   int        `json:"occupied"`
	Vacant     int        `json:"vacant"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toPropertyResponse(p *property.Property) propertyResponse {
	return propertyResponse{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Name:       p.Name,
		Address:    p.Address,
		DueDays:    p.DueDays,
		TotalRooms: p.TotalRooms,
		Occupied:   p.Occupied,
		Vacant:     p.Vacant,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type tenantResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type roomResponse struct {
	ID         uuid.UUID           `json:"id"`
	PropertyID uuid.UUID           `json:"property_id"`
	Number     string              `json:"number"`
	Type       string              `json:"type,omitempty"`
	RentCents  int64               `json:"rent_cents"`
	Utilities  property.Utilities  `json:"utilities,omitempty"`
	Status     property.RoomStatus `json:"status"`
	TenantID   *uuid.UUID          `json:"tenant_id,omitempty"`
	Tenant     *tenantResponse     `json:"tenant,omitempty"`
	LeaseStart *time.Time          `json:"lease_start,omitempty"`
	LeaseEnd   *time.Time          `json:"lease_end,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty"`
}

func toRoomResponse(room *property.Room) roomResponse {
	resp := roomResponse{
		ID:         room.ID,
		PropertyID: room.PropertyID,
		Number:     room.Number,
		Type:       room.Type,
		RentCents:  room.RentCents,
		Utilities:  room.Utilities,
		Status:     room.Status,
		TenantID:   room.TenantID,
		LeaseStart: room.LeaseStart,
		LeaseEnd:   room.LeaseEnd,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}

	if room.Tenant != nil {
		resp.Tenant = &tenantResponse{
			Name:  room.Tenant.Name,
			Email: room.Tenant.Email,
			Phone: room.Tenant.Phone,
		}
	}

	return resp
}

type createPropertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	DueDays int    `json:"due_days,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreateProperty(r.Context(), property.CreatePropertyParams{
		OwnerID: middleware.UserID(r.Context()),
		Name:    req.Name,
		Address: req.Address,
		DueDays: req.DueDays,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toPropertyResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.ListProperties(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]propertyResponse, len(props))
	for i, p := range props {
		resp[i] = toPropertyResponse(p)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPropertyResponse(p))
}

type updatePropertyRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	DueDays *int    `json:"due_days,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.UpdateProperty(r.Context(), middleware.UserID(r.Context()), id, property.UpdatePropertyParams{
		Name:    req.Name,
		Address: req.Address,
		DueDays: req.DueDays,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteProperty(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rooms, err := h.svc.ListRooms(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]roomResponse, len(rooms))
	for i, room := range rooms {
		resp[i] = toRoomResponse(room)
	}

	respondJSON(w, http.StatusOK, resp)
}

type createRoomRequest struct {
	Number    string             `json:"number"`
	Type      string             `json:"type,omitempty"`
	RentCents int64              `json:"rent_cents"`
	Utilities property.Utilities `json:"utilities,omitempty"`
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), middleware.UserID(r.Context()), property.CreateRoomParams{
		PropertyID: propertyID,
		Number:     req.Number,
		Type:       req.Type,
		RentCents:  req.RentCents,
		Utilities:  req.Utilities,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	room, err := h.svc.GetRoom(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

type updateRoomRequest struct {
	Number    *string            `json:"number,omitempty"`
	Type      *string            `json:"type,omitempty"`
	RentCents *int64             `json:"rent_cents,omitempty"`
	Utilities property.Utilities `json:"utilities,omitempty"`
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := h.svc.UpdateRoom(r.Context(), middleware.UserID(r.Context()), id, property.UpdateRoomParams{
		Number:    req.Number,
		Type:      req.Type,
		RentCents: req.RentCents,
		Utilities: req.Utilities,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toRoomResponse(room))
}

type setRoomStatusRequest struct {
	Status property.RoomStatus `json:"status"`
}

func (h *Handler) setRoomStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setRoomStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Status != property.RoomVacant && req.Status != property.RoomMaintenance {
		http.Error(w, "status must be vacant or maintenance", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetRoomStatus(r.Context(), middleware.UserID(r.Context()), id, req.Status); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteRoom(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
