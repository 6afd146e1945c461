package importreadings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	billSvc   *billing.Service
}

func NewHandler(importSvc *importer.Service, billSvc *billing.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		billSvc:   billSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importReadings)
}

type importSuccessResponse struct {
	Imported int `json:"imported"`
}

// importReadings accepts a multipart CSV upload of meter readings and
// upserts them; bills generated afterwards pick up the new values.
func (h *Handler) importReadings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatMeters
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	readings, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.billSvc.RecordReadings(r.Context(), readings); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{Imported: len(readings)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
