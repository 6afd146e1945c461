package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/http/middleware"
	"github.com/boardinghub/boardinghub/internal/user"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) BillRoutes(r chi.Router) {
	r.Post("/generate", h.generate)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/paid", h.markPaid)
	r.Post("/{id}/proofs", h.submitProof)
	r.Get("/{id}/history", h.billHistory)
}

func (h *Handler) ProofRoutes(r chi.Router) {
	r.Get("/", h.listProofs)
	r.Get("/{id}", h.getProof)
	r.Post("/{id}/review", h.reviewProof)
}

func (h *Handler) HistoryRoutes(r chi.Router) {
	r.Get("/", h.listHistory)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	case errors.Is(err, billing.ErrProofNotFound):
		http.Error(w, "payment proof not found", http.StatusNotFound)
	case errors.Is(err, billing.ErrAccessDenied):
		http.Error(w, "access denied", http.StatusForbidden)
	case errors.Is(err, billing.ErrBillPaid),
		errors.Is(err, billing.ErrProofReviewed),
		errors.Is(err, billing.ErrDuplicateBill):
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

type generateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type skippedTenantResponse struct {
	TenantID uuid.UUID `json:"tenant_id"`
	RoomID   uuid.UUID `json:"room_id"`
	Reason   string    `json:"reason"`
}

type generateResponse struct {
	Bills   []billResponse          `json:"bills"`
	Skipped []skippedTenantResponse `json:"skipped,omitempty"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if middleware.Role(r.Context()) != string(user.RoleLandlord) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		http.Error(w, "invalid billing period", http.StatusBadRequest)
		return
	}

	period := billing.NewPeriod(req.Year, time.Month(req.Month))

	result, err := h.svc.Generate(r.Context(), middleware.UserID(r.Context()), period)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := generateResponse{Bills: toBillResponseList(result.Bills)}
	for _, skip := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedTenantResponse{
			TenantID: skip.TenantID,
			RoomID:   skip.RoomID,
			Reason:   skip.Reason,
		})
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := billing.ListFilter{}

	// A landlord sees their issued bills; a tenant their own.
	callerID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) == string(user.RoleLandlord) {
		filter.LandlordID = &callerID
	} else {
		filter.TenantID = &callerID
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st := billing.Status(s)
		filter.Status = &st
	}

	if s := r.URL.Query().Get("year"); s != "" {
		if year, err := strconv.Atoi(s); err == nil {
			filter.Year = &year
		}
	}

	if s := r.URL.Query().Get("month"); s != "" {
		if m, err := strconv.Atoi(s); err == nil && m >= 1 && m <= 12 {
			month := time.Month(m)
			filter.Month = &month
		}
	}

	if s := r.URL.Query().Get("property_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.PropertyID = &id
		}
	}

	bills, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBillResponseList(bills))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	bill, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	callerID := middleware.UserID(r.Context())
	if bill.TenantID != callerID && bill.LandlordID != callerID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, toBillResponse(bill))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type markPaidRequest struct {
	Method string `json:"method,omitempty"`
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req markPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill, err := h.svc.MarkPaid(r.Context(), middleware.UserID(r.Context()), id, req.Method)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toBillResponse(bill))
}

type submitProofRequest struct {
	ImageURL string `json:"image_url"`
	Note     string `json:"note,omitempty"`
}

func (h *Handler) submitProof(w http.ResponseWriter, r *http.Request) {
	billID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req submitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ImageURL == "" {
		http.Error(w, "image_url is required", http.StatusBadRequest)
		return
	}

	proof, err := h.svc.SubmitProof(r.Context(), middleware.UserID(r.Context()), billID, billing.SubmitProofParams{
		ImageURL: req.ImageURL,
		Note:     req.Note,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProofResponse(proof))
}

func (h *Handler) billHistory(w http.ResponseWriter, r *http.Request) {
	billID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	bill, err := h.svc.Get(r.Context(), billID)
	if err != nil {
		respondError(w, err)
		return
	}

	callerID := middleware.UserID(r.Context())
	if bill.TenantID != callerID && bill.LandlordID != callerID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	history, err := h.svc.History(r.Context(), billing.HistoryFilter{BillID: &billID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toHistoryResponseList(history))
}

func (h *Handler) listProofs(w http.ResponseWriter, r *http.Request) {
	filter := billing.ProofFilter{}

	callerID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) == string(user.RoleLandlord) {
		filter.LandlordID = &callerID
	} else {
		filter.TenantID = &callerID
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st := billing.ProofStatus(s)
		filter.Status = &st
	}

	if s := r.URL.Query().Get("bill_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.BillID = &id
		}
	}

	proofs, err := h.svc.ListProofs(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProofResponseList(proofs))
}

func (h *Handler) getProof(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	proof, err := h.svc.GetProof(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	callerID := middleware.UserID(r.Context())
	if proof.TenantID != callerID && proof.LandlordID != callerID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, toProofResponse(proof))
}

type reviewRequest struct {
	Action string `json:"action"`
	Note   string `json:"note,omitempty"`
}

func (h *Handler) reviewProof(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	action := billing.ReviewAction(req.Action)
	if action != billing.ReviewApprove && action != billing.ReviewReject {
		http.Error(w, "action must be approve or reject", http.StatusBadRequest)
		return
	}

	proof, err := h.svc.ReviewProof(r.Context(), middleware.UserID(r.Context()), id, action, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProofResponse(proof))
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	filter := billing.HistoryFilter{}

	callerID := middleware.UserID(r.Context())
	if middleware.Role(r.Context()) == string(user.RoleLandlord) {
		filter.LandlordID = &callerID
	} else {
		filter.TenantID = &callerID
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.From = &t
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.To = &t
		}
	}

	history, err := h.svc.History(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toHistoryResponseList(history))
}
