package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anindyar/kasbon/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{dataset}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	dataset := export.Dataset(chi.URLParam(r, "dataset"))
	if !dataset.Valid() {
		http.Error(w, "unknown dataset", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s.csv", dataset, time.Now().Format("20060102"))))

	if err := h.svc.Export(r.Context(), dataset, w); err != nil {
		// The CSV body may already be partially written.
		slog.Error("failed to export dataset", "dataset", dataset, "error", err)
	}
}
