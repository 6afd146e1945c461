package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/export"
	"github.com/boardinghub/boardinghub/internal/http/middleware"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type paymentResponse struct {
	ReceiptID   string    `json:"receipt_id"`
	InvoiceID   string    `json:"invoice_id"`
	BillID      uuid.UUID `json:"bill_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
	ProofFile   string    `json:"proof_file,omitempty"`
}

type exportMetadataResponse struct {
	Payments []paymentResponse `json:"payments"`
	Summary  string            `json:"summary"`
}

func toPaymentResponse(item export.Item) paymentResponse {
	resp := paymentResponse{
		ReceiptID:   item.History.ReceiptID,
		InvoiceID:   item.History.InvoiceID,
		BillID:      item.History.BillID,
		AmountCents: item.History.AmountCents,
		Method:      item.History.Method,
		PaidAt:      item.History.PaidAt,
	}

	if item.FilePath != "" {
		resp.ProofFile = filepath.Base(item.FilePath)
	}

	return resp
}

func (h *Handler) filter(r *http.Request, req exportRequest) billing.HistoryFilter {
	landlordID := middleware.UserID(r.Context())

	return billing.HistoryFilter{
		LandlordID: &landlordID,
		From:       req.From,
		To:         req.To,
	}
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "boardinghub-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.svc.Export(r.Context(), h.filter(r, req), tmpDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payments := make([]paymentResponse, 0, len(items))
	for _, item := range items {
		payments = append(payments, toPaymentResponse(item))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(exportMetadataResponse{
		Payments: payments,
		Summary:  h.svc.GenerateSummary(items),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "boardinghub-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.svc.Export(r.Context(), h.filter(r, req), tmpDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary := h.svc.GenerateSummary(items)
	if err := os.WriteFile(filepath.Join(tmpDir, "register.txt"), []byte(summary), 0o644); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"payments_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
