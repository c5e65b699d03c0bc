package journal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/anindyar/kasbon/internal/ledger"
)

var validate = validator.New()

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type lineRequest struct {
	Account string `json:"account" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
}

type createEntryRequest struct {
	Date        time.Time     `json:"date"`
	Description string        `json:"description" validate:"required"`
	Reference   string        `json:"reference"`
	Debit       []lineRequest `json:"debit" validate:"min=1,dive"`
	Credit      []lineRequest `json:"credit" validate:"min=1,dive"`
}

type lineResponse struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

type entryResponse struct {
	ID          string             `json:"id"`
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Reference   string             `json:"reference,omitempty"`
	Type        ledger.EntryOrigin `json:"type"`
	Debit       []lineResponse     `json:"debit"`
	Credit      []lineResponse     `json:"credit"`
	Balanced    bool               `json:"balanced"`
}

func toLines(lines []ledger.Line) []lineResponse {
	resp := make([]lineResponse, len(lines))
	for i, l := range lines {
		resp[i] = lineResponse{Account: l.Account, Amount: l.Amount}
	}

	return resp
}

func toResponse(e ledger.JournalEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Reference:   e.Reference,
		Type:        e.Type,
		Debit:       toLines(e.Debit),
		Credit:      toLines(e.Credit),
		Balanced:    e.Balanced(),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	toLedger := func(lines []lineRequest) []ledger.Line {
		out := make([]ledger.Line, len(lines))
		for i, l := range lines {
			out[i] = ledger.Line{Account: l.Account, Amount: l.Amount}
		}

		return out
	}

	e, err := h.svc.AddJournalEntry(r.Context(), ledger.EntryParams{
		Date:        req.Date,
		Description: req.Description,
		Reference:   req.Reference,
		Debit:       toLedger(req.Debit),
		Credit:      toLedger(req.Credit),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.JournalEntries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteJournalEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "journal entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
