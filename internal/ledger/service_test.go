package ledger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anindyar/kasbon/internal/ledger"
	"github.com/anindyar/kasbon/internal/ledger/store"
)

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	return ledger.NewService(store.NewMemory())
}

func addProduct(t *testing.T, svc *ledger.Service, params ledger.ProductParams) ledger.Product {
	t.Helper()

	p, err := svc.AddProduct(context.Background(), params)
	require.NoError(t, err)

	return p
}

func TestService_AddProduct_AssignsPrefixedID(t *testing.T) {
	svc := newService(t)

	p := addProduct(t, svc, ledger.ProductParams{Name: "Kopi Sachet", Price: 2500, Cost: 1800, Stock: 10})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "PRD", p.ID[:3])

	q := addProduct(t, svc, ledger.ProductParams{Name: "Gula 1kg", Price: 17000, Cost: 15000})
	assert.NotEqual(t, p.ID, q.ID)
}

func TestService_Products_MostRecentFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first := addProduct(t, svc, ledger.ProductParams{Name: "A"})
	second := addProduct(t, svc, ledger.ProductParams{Name: "B"})

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)
}

func TestService_UpdateProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Teh Celup", Price: 9000, Cost: 7000, Stock: 5})

	newPrice := int64(9500)

	updated, err := svc.UpdateProduct(ctx, p.ID, ledger.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(9500), updated.Price)
	assert.Equal(t, "Teh Celup", updated.Name, "untouched fields survive the merge")
	assert.Equal(t, 5, updated.Stock)
}

func TestService_UpdateProduct_NotFound(t *testing.T) {
	svc := newService(t)

	name := "x"

	_, err := svc.UpdateProduct(context.Background(), "PRD0", ledger.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_AdjustStock(t *testing.T) {
	type testCase struct {
		name        string
		startStock  int
		quantity    int
		direction   ledger.StockDirection
		wantStock   int
		wantClamped bool
	}

	tests := []testCase{
		{
			name:       "SaleSubtracts",
			startStock: 10,
			quantity:   4,
			direction:  ledger.DirectionSale,
			wantStock:  6,
		},
		{
			name:       "PurchaseAdds",
			startStock: 10,
			quantity:   4,
			direction:  ledger.DirectionPurchase,
			wantStock:  14,
		},
		{
			name:        "OverdrawClampsAtZero",
			startStock:  3,
			quantity:    8,
			direction:   ledger.DirectionSale,
			wantStock:   0,
			wantClamped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			ctx := context.Background()

			p := addProduct(t, svc, ledger.ProductParams{Name: "Sabun", Stock: tt.startStock})

			adj, err := svc.AdjustStock(ctx, p.ID, tt.quantity, tt.direction)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, adj.NewStock)
			assert.Equal(t, tt.wantClamped, adj.Clamped)

			got, err := svc.Product(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, got.Stock)
		})
	}
}

func TestService_AdjustStock_UnknownProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	addProduct(t, svc, ledger.ProductParams{Name: "Roti", Stock: 7})

	_, err := svc.AdjustStock(ctx, "does-not-exist", 10, ledger.DirectionSale)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].Stock, "no product is touched")
}

func TestService_AddTransaction_SaleCascade(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Mie Instan", Price: 5000, Cost: 3000, Stock: 20})

	tx, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Customer:    "Bu Sari",
		Type:        ledger.TypeSale,
		Amount:      20000,
		Description: "Penjualan toko",
		Status:      ledger.StatusPaid,
		Items: []ledger.Item{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 4, Price: 5000},
		},
		PaymentMethod: ledger.PaymentCash,
		CashReceived:  50000,
		Change:        30000,
	})
	require.NoError(t, err)
	assert.Equal(t, "TRX", tx.ID[:3])
	assert.Equal(t, int64(3000), tx.Items[0].Cost, "unit cost snapshotted onto the line")

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Stock)

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2, "revenue entry plus COGS entry")

	for _, e := range entries {
		assert.Equal(t, ledger.OriginAutomatic, e.Type)
		assert.Equal(t, tx.ID, e.Reference)
		assert.True(t, e.Balanced(), "entry %s must balance", e.ID)
	}

	// Entries prepend, so the COGS entry is first.
	cogs, revenue := entries[0], entries[1]
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountCOGS, Amount: 12000}}, cogs.Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountInventory, Amount: 12000}}, cogs.Credit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountCash, Amount: 20000}}, revenue.Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountRevenue, Amount: 20000}}, revenue.Credit)
}

func TestService_AddTransaction_UnpaidSaleDebitsReceivable(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:        ledger.TypeSale,
		Amount:      75000,
		Description: "Kredit warung",
		Status:      ledger.StatusUnpaid,
	})
	require.NoError(t, err)

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no items, so no COGS entry")
	assert.Equal(t, tx.ID, entries[0].Reference)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountReceivable, Amount: 75000}}, entries[0].Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountRevenue, Amount: 75000}}, entries[0].Credit)
}

func TestService_AddTransaction_PurchaseTypeIncreasesStock(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Telur", Stock: 2})

	_, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:        ledger.TypePurchase,
		Amount:      52000,
		Description: "Restock telur",
		Status:      ledger.StatusUnpaid,
		Items: []ledger.Item{
			{ProductID: p.ID, ProductName: p.Name, Quantity: 20, Price: 2600},
		},
	})
	require.NoError(t, err)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 22, got.Stock)

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountInventory, Amount: 52000}}, entries[0].Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountPayable, Amount: 52000}}, entries[0].Credit)
}

func TestService_AddTransaction_UnknownProductLineKept(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:        ledger.TypeSale,
		Amount:      10000,
		Description: "Item lama",
		Status:      ledger.StatusPaid,
		Items: []ledger.Item{
			{ProductID: "PRD-gone", ProductName: "Produk Dihapus", Quantity: 2, Price: 5000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Produk Dihapus", tx.Items[0].ProductName)

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no COGS entry when the product is unknown")
}

func TestService_AddTransaction_OverdrawClampWarns(t *testing.T) {
	var buf bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Teh Botol", Price: 4000, Cost: 2500, Stock: 3})

	tx, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:   ledger.TypeSale,
		Amount: 20000,
		Status: ledger.StatusPaid,
		Items:  []ledger.Item{{ProductID: p.ID, ProductName: p.Name, Quantity: 5, Price: 4000}},
	})
	require.NoError(t, err)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	logged := buf.String()
	assert.Contains(t, logged, "clamped")
	assert.Contains(t, logged, tx.ID)
	assert.Contains(t, logged, p.ID)
}

func TestService_StockConservation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Beras 5kg", Cost: 62000, Stock: 9})

	_, err := svc.AddPurchase(ctx, ledger.PurchaseParams{
		Supplier: "CV Tani Makmur",
		Amount:   310000,
		Status:   ledger.StatusPaid,
		Items:    []ledger.PurchaseItem{{ProductID: p.ID, ProductName: p.Name, Quantity: 5, Cost: 62000}},
	})
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:   ledger.TypeSale,
		Amount: 350000,
		Status: ledger.StatusPaid,
		Items:  []ledger.Item{{ProductID: p.ID, ProductName: p.Name, Quantity: 5, Price: 70000}},
	})
	require.NoError(t, err)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Stock, "purchase then equal sale returns stock to its starting value")
}

func TestService_AddPurchase_JournalShape(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	pur, err := svc.AddPurchase(ctx, ledger.PurchaseParams{
		Supplier:    "Toko Grosir",
		Amount:      120000,
		Description: "Stok mingguan",
		Status:      ledger.StatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "PUR", pur.ID[:3])

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, ledger.OriginAutomatic, e.Type)
	assert.Equal(t, pur.ID, e.Reference)
	assert.True(t, e.Balanced())
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountInventory, Amount: 120000}}, e.Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountCash, Amount: 120000}}, e.Credit)
}

func TestService_AddExpense_JournalShape(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	exp, err := svc.AddExpense(ctx, ledger.ExpenseParams{
		Description: "Listrik bulan Maret",
		Amount:      500000,
		Category:    ledger.CategoryOperational,
		Status:      ledger.StatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "EXP", exp.ID[:3])

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1, "creating an expense produces exactly one entry")

	e := entries[0]
	assert.Equal(t, ledger.OriginAutomatic, e.Type)
	assert.Equal(t, exp.ID, e.Reference)
	assert.Equal(t, []ledger.Line{{Account: "Expense:Operasional", Amount: 500000}}, e.Debit)
	assert.Equal(t, []ledger.Line{{Account: ledger.AccountCash, Amount: 500000}}, e.Credit)
}

func TestService_DeleteTransaction_NoCascade(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p := addProduct(t, svc, ledger.ProductParams{Name: "Minyak", Cost: 14000, Stock: 10})

	tx, err := svc.AddTransaction(ctx, ledger.TransactionParams{
		Type:   ledger.TypeSale,
		Amount: 32000,
		Status: ledger.StatusPaid,
		Items:  []ledger.Item{{ProductID: p.ID, ProductName: p.Name, Quantity: 2, Price: 16000}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock, "stock adjustment is not reversed")

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "journal entries stay, now orphaned")
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "PRD0"), ledger.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteTransaction(ctx, "TRX0"), ledger.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePurchase(ctx, "PUR0"), ledger.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteExpense(ctx, "EXP0"), ledger.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteJournalEntry(ctx, "JRN0"), ledger.ErrNotFound)
}

func TestService_AddJournalEntry_Manual(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	e, err := svc.AddJournalEntry(ctx, ledger.EntryParams{
		Description: "Setoran modal awal",
		Debit:       []ledger.Line{{Account: "Cash", Amount: 5000000}},
		Credit:      []ledger.Line{{Account: "Modal Pemilik", Amount: 5000000}},
	})
	require.NoError(t, err)
	assert.Equal(t, "JRN", e.ID[:3])
	assert.Equal(t, ledger.OriginManual, e.Type)

	require.NoError(t, svc.DeleteJournalEntry(ctx, e.ID))

	entries, err := svc.JournalEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_LowStockProducts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	low := addProduct(t, svc, ledger.ProductParams{Name: "Kecap", Stock: 2, MinStock: 5})
	addProduct(t, svc, ledger.ProductParams{Name: "Sambal", Stock: 50, MinStock: 5})

	products, err := svc.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func TestService_AddTransaction_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := ledger.NewMockStore(ctrl)
	st.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))

	svc := ledger.NewService(st)

	_, err := svc.AddTransaction(context.Background(), ledger.TransactionParams{
		Type:   ledger.TypeSale,
		Amount: 1000,
		Status: ledger.StatusPaid,
	})
	assert.Error(t, err)
}

func TestService_Summary_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := ledger.NewMockStore(ctrl)
	st.EXPECT().
		ListProducts(gomock.Any()).
		Return(nil, errors.New("db down"))

	svc := ledger.NewService(st)

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}
