package purchase

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
	Cost        int64  `json:"cost" validate:"gte=0"`
}

type createPurchaseRequest struct {
	Date          time.Time            `json:"date"`
	Supplier      string               `json:"supplier" validate:"required"`
	Amount        int64                `json:"amount" validate:"gte=0"`
	Description   string               `json:"description"`
	Status        ledger.Status        `json:"status" validate:"required,oneof='Lunas' 'Belum Lunas'"`
	Items         []itemRequest        `json:"items" validate:"dive"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
}

type itemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Cost        int64  `json:"cost"`
}

type purchaseResponse struct {
	ID            string               `json:"id"`
	Date          time.Time            `json:"date"`
	Supplier      string               `json:"supplier"`
	Amount        int64                `json:"amount"`
	Description   string               `json:"description"`
	Status        ledger.Status        `json:"status"`
	Items         []itemResponse       `json:"items"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method,omitempty"`
}

func toResponse(p ledger.Purchase) purchaseResponse {
	items := make([]itemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = itemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Cost:        it.Cost,
		}
	}

	return purchaseResponse{
		ID:            p.ID,
		Date:          p.Date,
		Supplier:      p.Supplier,
		Amount:        p.Amount,
		Description:   p.Description,
		Status:        p.Status,
		Items:         items,
		PaymentMethod: p.PaymentMethod,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]ledger.PurchaseItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = ledger.PurchaseItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Cost:        it.Cost,
		}
	}

	p, err := h.svc.AddPurchase(r.Context(), ledger.PurchaseParams{
		Date:          req.Date,
		Supplier:      req.Supplier,
		Amount:        req.Amount,
		Description:   req.Description,
		Status:        req.Status,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.svc.Purchases(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]purchaseResponse, len(purchases))
	for i, p := range purchases {
		resp[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Purchase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "purchase not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePurchase(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "purchase not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
