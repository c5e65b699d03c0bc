package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authhandler "github.com/anindyar/kasbon/internal/http/auth"
	"github.com/anindyar/kasbon/internal/http/categorize"
	"github.com/anindyar/kasbon/internal/http/expense"
	"github.com/anindyar/kasbon/internal/http/export"
	"github.com/anindyar/kasbon/internal/http/importcsv"
	"github.com/anindyar/kasbon/internal/http/journal"
	"github.com/anindyar/kasbon/internal/http/product"
	"github.com/anindyar/kasbon/internal/http/purchase"
	"github.com/anindyar/kasbon/internal/http/summary"
	"github.com/anindyar/kasbon/internal/http/transaction"
)

func New(
	verifier TokenVerifier,
	authV1 *authhandler.Handler,
	productsV1 *product.Handler,
	transactionsV1 *transaction.Handler,
	purchasesV1 *purchase.Handler,
	expensesV1 *expense.Handler,
	journalV1 *journal.Handler,
	summaryV1 *summary.Handler,
	importV1 *importcsv.Handler,
	categorizeV1 *categorize.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(verifier))

			r.Route("/products", func(r chi.Router) {
				productsV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				purchasesV1.Routes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/journal", func(r chi.Router) {
				journalV1.Routes(r)
			})

			r.Route("/summary", func(r chi.Router) {
				summaryV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/categorize", func(r chi.Router) {
				categorizeV1.Routes(r)
			})

			r.Route("/export", exportV1.Routes)
		})
	})

	return router
}
