package product

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

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
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/stock", h.adjustStock)
}

type createProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Price    int64  `json:"price" validate:"gte=0"`
	Cost     int64  `json:"cost" validate:"gte=0"`
	Stock    int    `json:"stock" validate:"gte=0"`
	MinStock int    `json:"min_stock" validate:"gte=0"`
	Supplier string `json:"supplier"`
}

type productResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Cost     int64  `json:"cost"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Supplier string `json:"supplier"`
	LowStock bool   `json:"low_stock"`
}

func toResponse(p ledger.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Supplier: p.Supplier,
		LowStock: p.LowStock(),
	}
}

func toResponseList(products []ledger.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.AddProduct(r.Context(), ledger.ProductParams{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Supplier: req.Supplier,
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
	var (
		products []ledger.Product
		err      error
	)

	if r.URL.Query().Get("low_stock") == "true" {
		products, err = h.svc.LowStockProducts(r.Context())
	} else {
		products, err = h.svc.Products(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(products)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
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

type updateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	Cost     *int64  `json:"cost,omitempty"`
	Stock    *int    `json:"stock,omitempty"`
	MinStock *int    `json:"min_stock,omitempty"`
	Supplier *string `json:"supplier,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), ledger.ProductUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Supplier: req.Supplier,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
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
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type adjustStockRequest struct {
	Quantity  int                   `json:"quantity" validate:"gt=0"`
	Direction ledger.StockDirection `json:"direction" validate:"required,oneof=sale purchase"`
}

type adjustStockResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
	Clamped   bool   `json:"clamped"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	adj, err := h.svc.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Quantity, req.Direction)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(adjustStockResponse{
		ProductID: adj.ProductID,
		NewStock:  adj.NewStock,
		Clamped:   adj.Clamped,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
