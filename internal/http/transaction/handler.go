package transaction

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
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Price       int64  `json:"price" validate:"gte=0"`
}

type createTransactionRequest struct {
	Date          time.Time              `json:"date"`
	Customer      string                 `json:"customer"`
	Type          ledger.TransactionType `json:"type" validate:"required,oneof='Penjualan' 'Pembelian'"`
	Amount        int64                  `json:"amount" validate:"gte=0"`
	Description   string                 `json:"description"`
	Status        ledger.Status          `json:"status" validate:"required,oneof='Lunas' 'Belum Lunas'"`
	Items         []itemRequest          `json:"items" validate:"dive"`
	PaymentMethod ledger.PaymentMethod   `json:"payment_method"`
	CashReceived  int64                  `json:"cash_received"`
	Change        int64                  `json:"change"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]ledger.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = ledger.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
	}

	tx, err := h.svc.AddTransaction(r.Context(), ledger.TransactionParams{
		Date:          req.Date,
		Customer:      req.Customer,
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		Status:        req.Status,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		CashReceived:  req.CashReceived,
		Change:        req.Change,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Transactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Transaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
