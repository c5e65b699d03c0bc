package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anindyar/kasbon/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/accounts", h.accounts)
	r.Get("/trial-balance", h.trialBalance)
}

type summaryResponse struct {
	TotalRevenue     int64   `json:"total_revenue"`
	TotalPurchases   int64   `json:"total_purchases"`
	TotalExpenses    int64   `json:"total_expenses"`
	TotalCOGS        int64   `json:"total_cogs"`
	GrossProfit      int64   `json:"gross_profit"`
	NetIncome        int64   `json:"net_income"`
	InventoryValue   int64   `json:"inventory_value"`
	Cash             int64   `json:"cash"`
	TotalAssets      int64   `json:"total_assets"`
	TotalLiabilities int64   `json:"total_liabilities"`
	Equity           int64   `json:"equity"`
	GrossMargin      float64 `json:"gross_margin"`
	NetMargin        float64 `json:"net_margin"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	gross, net := s.Margins()

	resp := summaryResponse{
		TotalRevenue:     s.TotalRevenue,
		TotalPurchases:   s.TotalPurchases,
		TotalExpenses:    s.TotalExpenses,
		TotalCOGS:        s.TotalCOGS,
		GrossProfit:      s.GrossProfit,
		NetIncome:        s.NetIncome,
		InventoryValue:   s.InventoryValue,
		Cash:             s.Cash,
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		Equity:           s.Equity,
		GrossMargin:      gross,
		NetMargin:        net,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type accountsResponse struct {
	Kas         int64 `json:"kas"`
	Piutang     int64 `json:"piutang"`
	Persediaan  int64 `json:"persediaan"`
	Peralatan   int64 `json:"peralatan"`
	HutangUsaha int64 `json:"hutang_usaha"`
	HutangBank  int64 `json:"hutang_bank"`
	Modal       int64 `json:"modal"`
}

func (h *Handler) accounts(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Accounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := accountsResponse{
		Kas:         a.Kas,
		Piutang:     a.Piutang,
		Persediaan:  a.Persediaan,
		Peralatan:   a.Peralatan,
		HutangUsaha: a.HutangUsaha,
		HutangBank:  a.HutangBank,
		Modal:       a.Modal,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type accountBalanceResponse struct {
	Account string             `json:"account"`
	Kind    ledger.AccountKind `json:"kind"`
	Debit   int64              `json:"debit"`
	Credit  int64              `json:"credit"`
	Balance int64              `json:"balance"`
}

type trialBalanceResponse struct {
	Accounts    []accountBalanceResponse `json:"accounts"`
	TotalDebit  int64                    `json:"total_debit"`
	TotalCredit int64                    `json:"total_credit"`
	Assets      int64                    `json:"assets"`
	Liabilities int64                    `json:"liabilities"`
	Equity      int64                    `json:"equity"`
	Revenue     int64                    `json:"revenue"`
	Expenses    int64                    `json:"expenses"`
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.svc.TrialBalance(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	accounts := make([]accountBalanceResponse, len(tb.Accounts))
	for i, ab := range tb.Accounts {
		accounts[i] = accountBalanceResponse{
			Account: ab.Account,
			Kind:    ab.Kind,
			Debit:   ab.Debit,
			Credit:  ab.Credit,
			Balance: ab.Balance,
		}
	}

	resp := trialBalanceResponse{
		Accounts:    accounts,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Assets:      tb.Assets,
		Liabilities: tb.Liabilities,
		Equity:      tb.Equity,
		Revenue:     tb.Revenue,
		Expenses:    tb.Expenses,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
