package ledger

import (
	"sort"
	"strings"
)

// FinancialSummary is the aggregate view derived from the current store
// contents. It is recomputed from scratch on every call; there is no cache
// to invalidate.
//
// TotalAssets and TotalLiabilities are fixed-ratio proxies carried over from
// the reference dashboard (equipment and other assets estimated at half of
// revenue, payables at a fifth of purchases), not a trial balance. See
// TrialBalance for the per-account alternative.
type FinancialSummary struct {
	TotalRevenue     int64
	TotalPurchases   int64
	TotalExpenses    int64
	TotalCOGS        int64
	GrossProfit      int64
	NetIncome        int64
	InventoryValue   int64
	Cash             int64
	TotalAssets      int64
	TotalLiabilities int64
	Equity           int64
}

// Margins returns gross and net margin as percentages of revenue. The
// denominator is floored at 1 so a fresh ledger does not divide by zero.
func (s FinancialSummary) Margins() (gross, net float64) {
	revenue := s.TotalRevenue
	if revenue < 1 {
		revenue = 1
	}

	gross = float64(s.GrossProfit) * 100 / float64(revenue)
	net = float64(s.NetIncome) * 100 / float64(revenue)

	return gross, net
}

func summarize(products []Product, txs []Transaction, purchases []Purchase, expenses []Expense) FinancialSummary {
	var s FinancialSummary

	for _, tx := range txs {
		if tx.Type != TypeSale || tx.Status != StatusPaid {
			continue
		}

		s.TotalRevenue += tx.Amount

		for _, item := range tx.Items {
			cost, ok := currentCost(products, item.ProductID)
			if !ok {
				continue
			}

			s.TotalCOGS += int64(item.Quantity) * cost
		}
	}

	for _, p := range purchases {
		if p.Status == StatusPaid {
			s.TotalPurchases += p.Amount
		}
	}

	for _, e := range expenses {
		if e.Status == StatusPaid {
			s.TotalExpenses += e.Amount
		}
	}

	for _, p := range products {
		s.InventoryValue += int64(p.Stock) * p.Cost
	}

	s.GrossProfit = s.TotalRevenue - s.TotalCOGS
	s.NetIncome = s.GrossProfit - s.TotalExpenses
	s.Cash = s.TotalRevenue - s.TotalExpenses - s.TotalPurchases
	s.TotalAssets = s.Cash + s.InventoryValue + s.TotalRevenue/2
	s.TotalLiabilities = s.TotalPurchases / 5
	s.Equity = s.TotalAssets - s.TotalLiabilities

	return s
}

func currentCost(products []Product, id string) (int64, bool) {
	for _, p := range products {
		if p.ID == id {
			return p.Cost, true
		}
	}

	return 0, false
}

// AccountsData is the proxy account breakdown shown on the reference
// balance-sheet screen. Piutang, peralatan and hutang bank are the same
// fixed-ratio estimates the dashboard used.
type AccountsData struct {
	Kas         int64
	Piutang     int64
	Persediaan  int64
	Peralatan   int64
	HutangUsaha int64
	HutangBank  int64
	Modal       int64
}

func accountsData(s FinancialSummary) AccountsData {
	return AccountsData{
		Kas:         s.Cash,
		Piutang:     s.TotalRevenue / 10,
		Persediaan:  s.InventoryValue,
		Peralatan:   s.TotalRevenue / 2,
		HutangUsaha: s.TotalPurchases / 5,
		HutangBank:  s.TotalPurchases / 10,
		Modal:       s.Equity,
	}
}

// AccountKind classifies a journal account for trial-balance purposes.
type AccountKind string

const (
	KindAsset     AccountKind = "asset"
	KindLiability AccountKind = "liability"
	KindEquity    AccountKind = "equity"
	KindRevenue   AccountKind = "revenue"
	KindExpense   AccountKind = "expense"
)

// ClassifyAccount maps an account name to its kind. The generated accounts
// are matched exactly; manual-entry accounts fall back to name heuristics
// covering the Indonesian and English terms the bookkeeper is likely to use,
// defaulting to asset.
func ClassifyAccount(name string) AccountKind {
	switch name {
	case AccountCash, AccountReceivable, AccountInventory:
		return KindAsset
	case AccountPayable:
		return KindLiability
	case AccountRevenue:
		return KindRevenue
	case AccountCOGS:
		return KindExpense
	}

	lower := strings.ToLower(name)

	switch {
	case strings.HasPrefix(name, expenseAccountPrefix),
		strings.Contains(lower, "beban"), strings.Contains(lower, "expense"):
		return KindExpense
	case strings.Contains(lower, "hutang"), strings.Contains(lower, "utang"),
		strings.Contains(lower, "payable"), strings.Contains(lower, "liabilit"):
		return KindLiability
	case strings.Contains(lower, "pendapatan"), strings.Contains(lower, "revenue"),
		strings.Contains(lower, "penjualan"):
		return KindRevenue
	case strings.Contains(lower, "modal"), strings.Contains(lower, "equity"),
		strings.Contains(lower, "capital"), strings.Contains(lower, "prive"):
		return KindEquity
	}

	return KindAsset
}

// AccountBalance is one row of the trial balance. Balance is stated on the
// account's normal side: debit minus credit for assets and expenses, credit
// minus debit for liabilities, equity and revenue.
type AccountBalance struct {
	Account string
	Kind    AccountKind
	Debit   int64
	Credit  int64
	Balance int64
}

// TrialBalance is the true chart-of-accounts view computed from journal
// entry lines, the principled alternative to the proxy figures in
// FinancialSummary.
type TrialBalance struct {
	Accounts    []AccountBalance
	TotalDebit  int64
	TotalCredit int64
	Assets      int64
	Liabilities int64
	Equity      int64
	Revenue     int64
	Expenses    int64
}

func trialBalance(entries []JournalEntry) TrialBalance {
	type sums struct {
		debit  int64
		credit int64
	}

	byAccount := make(map[string]*sums)

	accum := func(account string) *sums {
		s, ok := byAccount[account]
		if !ok {
			s = &sums{}
			byAccount[account] = s
		}

		return s
	}

	var tb TrialBalance

	for _, e := range entries {
		for _, l := range e.Debit {
			accum(l.Account).debit += l.Amount
			tb.TotalDebit += l.Amount
		}

		for _, l := range e.Credit {
			accum(l.Account).credit += l.Amount
			tb.TotalCredit += l.Amount
		}
	}

	names := make([]string, 0, len(byAccount))
	for name := range byAccount {
		names = append(names, name)
	}

	sort.Strings(names)

	tb.Accounts = make([]AccountBalance, 0, len(names))

	for _, name := range names {
		s := byAccount[name]
		kind := ClassifyAccount(name)

		balance := s.debit - s.credit
		if kind == KindLiability || kind == KindEquity || kind == KindRevenue {
			balance = s.credit - s.debit
		}

		tb.Accounts = append(tb.Accounts, AccountBalance{
			Account: name,
			Kind:    kind,
			Debit:   s.debit,
			Credit:  s.credit,
			Balance: balance,
		})

		switch kind {
		case KindAsset:
			tb.Assets += balance
		case KindLiability:
			tb.Liabilities += balance
		case KindEquity:
			tb.Equity += balance
		case KindRevenue:
			tb.Revenue += balance
		case KindExpense:
			tb.Expenses += balance
		}
	}

	return tb
}
