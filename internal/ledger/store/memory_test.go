package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anindyar/kasbon/internal/ledger"
	"github.com/anindyar/kasbon/internal/ledger/store"
)

func TestMemory_Products(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertProduct(ctx, ledger.Product{ID: "PRD1", Name: "A"}))
	require.NoError(t, m.InsertProduct(ctx, ledger.Product{ID: "PRD2", Name: "B"}))

	products, err := m.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "PRD2", products[0].ID, "newest first")

	got, err := m.GetProduct(ctx, "PRD1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	got.Name = "A2"
	require.NoError(t, m.SaveProduct(ctx, got))

	got, err = m.GetProduct(ctx, "PRD1")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)

	require.NoError(t, m.DeleteProduct(ctx, "PRD1"))

	_, err = m.GetProduct(ctx, "PRD1")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestMemory_NotFound(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	_, err := m.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	assert.ErrorIs(t, m.SaveProduct(ctx, ledger.Product{ID: "nope"}), ledger.ErrNotFound)
	assert.ErrorIs(t, m.DeleteProduct(ctx, "nope"), ledger.ErrNotFound)
	assert.ErrorIs(t, m.DeleteTransaction(ctx, "nope"), ledger.ErrNotFound)
	assert.ErrorIs(t, m.DeletePurchase(ctx, "nope"), ledger.ErrNotFound)
	assert.ErrorIs(t, m.DeleteExpense(ctx, "nope"), ledger.ErrNotFound)
	assert.ErrorIs(t, m.DeleteJournalEntry(ctx, "nope"), ledger.ErrNotFound)
}

func TestMemory_ListIsCopy(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertExpense(ctx, ledger.Expense{ID: "EXP1", Amount: 1000}))

	expenses, err := m.ListExpenses(ctx)
	require.NoError(t, err)
	expenses[0].Amount = 9999

	again, err := m.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), again[0].Amount, "callers cannot mutate the store through a list")
}

func TestMemory_ListCopiesNestedSlices(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertTransaction(ctx, ledger.Transaction{
		ID:    "TRX1",
		Items: []ledger.Item{{ProductID: "PRD1", Quantity: 2, Price: 5000}},
	}))
	require.NoError(t, m.InsertPurchase(ctx, ledger.Purchase{
		ID:    "PUR1",
		Items: []ledger.PurchaseItem{{ProductID: "PRD1", Quantity: 3, Cost: 3000}},
	}))
	require.NoError(t, m.InsertJournalEntry(ctx, ledger.JournalEntry{
		ID:     "JRN1",
		Debit:  []ledger.Line{{Account: ledger.AccountCash, Amount: 10000}},
		Credit: []ledger.Line{{Account: ledger.AccountRevenue, Amount: 10000}},
	}))

	txs, err := m.ListTransactions(ctx)
	require.NoError(t, err)
	txs[0].Items[0].Quantity = 99

	purchases, err := m.ListPurchases(ctx)
	require.NoError(t, err)
	purchases[0].Items[0].Cost = 1

	entries, err := m.ListJournalEntries(ctx)
	require.NoError(t, err)
	entries[0].Debit[0].Amount = 1
	entries[0].Credit[0].Account = "Elsewhere"

	tx, err := m.GetTransaction(ctx, "TRX1")
	require.NoError(t, err)
	assert.Equal(t, 2, tx.Items[0].Quantity, "line items do not alias the store")

	tx.Items[0].Quantity = 77

	again, err := m.GetTransaction(ctx, "TRX1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity, "get results do not alias the store either")

	p, err := m.GetPurchase(ctx, "PUR1")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), p.Items[0].Cost)

	fresh, err := m.ListJournalEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), fresh[0].Debit[0].Amount)
	assert.Equal(t, ledger.AccountRevenue, fresh[0].Credit[0].Account)
}
