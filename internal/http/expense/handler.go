package expense

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

type createExpenseRequest struct {
	Date        time.Time              `json:"date"`
	Description string                 `json:"description" validate:"required"`
	Amount      int64                  `json:"amount" validate:"gt=0"`
	Category    ledger.ExpenseCategory `json:"category" validate:"required,oneof='Operasional' 'Administrasi' 'Penjualan' 'Lainnya'"`
	Status      ledger.Status          `json:"status" validate:"required,oneof='Lunas' 'Belum Lunas'"`
}

type expenseResponse struct {
	ID          string                 `json:"id"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	Category    ledger.ExpenseCategory `json:"category"`
	Status      ledger.Status          `json:"status"`
}

func toResponse(e ledger.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Status:      e.Status,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.AddExpense(r.Context(), ledger.ExpenseParams{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Status:      req.Status,
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
	expenses, err := h.svc.Expenses(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
