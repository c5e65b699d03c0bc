package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anindyar/kasbon/internal/ledger"
	"github.com/anindyar/kasbon/internal/ledger/store"
)

// seedBooks loads a small but complete set of records: one product, one paid
// sale, one unpaid sale, one purchase and one expense.
func seedBooks(t *testing.T, svc *ledger.Service) ledger.Product {
	t.Helper()
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{
		Name:  "Kopi Bubuk 250g",
		Price: 25000,
		Cost:  18000,
		Stock: 40,
	})

	_, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Date:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:   ledger.TypeSale,
		Amount: 250000,
		Status: ledger.StatusPaid,
		Items:  []ledger.Item{{ProductID: p.ID, ProductName: p.Name, Quantity: 10, Price: 25000}},
	})
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:   ledger.TypeSale,
		Amount: 100000,
		Status: ledger.StatusUnpaid,
	})
	require.NoError(t, err)

	_, err = svc.AddPurchase(ctx, ledger.PurchaseParams{
		Supplier: "PT Sumber Kopi",
		Amount:   360000,
		Status:   ledger.StatusPaid,
		Items:    []ledger.PurchaseItem{{ProductID: p.ID, ProductName: p.Name, Quantity: 20, Cost: 18000}},
	})
	require.NoError(t, err)

	_, err = svc.AddExpense(ctx, ledger.ExpenseParams{
		Description: "Sewa kios",
		Amount:      150000,
		Category:    ledger.CategoryOperational,
		Status:      ledger.StatusPaid,
	})
	require.NoError(t, err)

	return p
}

func TestService_Summary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedBooks(t, svc)

	s, err := svc.Summary(ctx)
	require.NoError(t, err)

	// Unpaid sales are excluded from revenue.
	assert.Equal(t, int64(250000), s.TotalRevenue)
	assert.Equal(t, int64(360000), s.TotalPurchases)
	assert.Equal(t, int64(150000), s.TotalExpenses)
	assert.Equal(t, int64(180000), s.TotalCOGS, "10 units at current cost 18000")
	assert.Equal(t, int64(70000), s.GrossProfit)
	assert.Equal(t, int64(-80000), s.NetIncome)

	// 40 + 20 purchased - 10 sold = 50 units on hand.
	assert.Equal(t, int64(900000), s.InventoryValue)
	assert.Equal(t, s.TotalRevenue-s.TotalExpenses-s.TotalPurchases, s.Cash)
	assert.Equal(t, s.Cash+s.InventoryValue+s.TotalRevenue/2, s.TotalAssets)
	assert.Equal(t, s.TotalPurchases/5, s.TotalLiabilities)
	assert.Equal(t, s.TotalAssets-s.TotalLiabilities, s.Equity)

	gross, net := s.Margins()
	assert.InDelta(t, 28.0, gross, 0.001)
	assert.InDelta(t, -32.0, net, 0.001)
}

func TestService_Summary_Idempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedBooks(t, svc)

	first, err := svc.Summary(ctx)
	require.NoError(t, err)

	second, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Summary_Empty(t *testing.T) {
	svc := newService(t)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ledger.FinancialSummary{}, s)

	gross, net := s.Margins()
	assert.Zero(t, gross)
	assert.Zero(t, net)
}

func TestService_Accounts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seedBooks(t, svc)

	a, err := svc.Accounts(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(25000), a.Piutang, "a tenth of revenue")
	assert.Equal(t, int64(125000), a.Peralatan, "half of revenue")
	assert.Equal(t, int64(72000), a.HutangUsaha, "a fifth of purchases")
	assert.Equal(t, int64(36000), a.HutangBank, "a tenth of purchases")
	assert.Equal(t, int64(900000), a.Persediaan)
}

func TestClassifyAccount(t *testing.T) {
	tests := []struct {
		account string
		want    ledger.AccountKind
	}{
		{ledger.AccountCash, ledger.KindAsset},
		{ledger.AccountReceivable, ledger.KindAsset},
		{ledger.AccountInventory, ledger.KindAsset},
		{ledger.AccountPayable, ledger.KindLiability},
		{ledger.AccountRevenue, ledger.KindRevenue},
		{ledger.AccountCOGS, ledger.KindExpense},
		{"Expense:Operasional", ledger.KindExpense},
		{"Hutang Bank", ledger.KindLiability},
		{"Modal Pemilik", ledger.KindEquity},
		{"Beban Sewa", ledger.KindExpense},
		{"Pendapatan Lain", ledger.KindRevenue},
		{"Mesin Kasir", ledger.KindAsset},
	}

	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.ClassifyAccount(tt.account))
		})
	}
}

func TestService_TrialBalance(t *testing.T) {
	svc := ledger.NewService(store.NewMemory())
	ctx := context.Background()

	seedBooks(t, svc)

	tb, err := svc.TrialBalance(ctx)
	require.NoError(t, err)

	assert.Equal(t, tb.TotalDebit, tb.TotalCredit, "the trial balance must balance")
	assert.NotEmpty(t, tb.Accounts)

	byName := make(map[string]ledger.AccountBalance, len(tb.Accounts))
	for _, ab := range tb.Accounts {
		byName[ab.Account] = ab
	}

	// 250000 cash in from the paid sale, 360000 + 150000 out.
	cash, ok := byName[ledger.AccountCash]
	require.True(t, ok)
	assert.Equal(t, ledger.KindAsset, cash.Kind)
	assert.Equal(t, int64(-260000), cash.Balance)

	rev, ok := byName[ledger.AccountRevenue]
	require.True(t, ok)
	assert.Equal(t, ledger.KindRevenue, rev.Kind)
	assert.Equal(t, int64(350000), rev.Balance, "paid and unpaid sales both hit the journal")
}
