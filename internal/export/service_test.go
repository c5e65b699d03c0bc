package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anindyar/kasbon/internal/export"
	"github.com/anindyar/kasbon/internal/ledger"
	"github.com/anindyar/kasbon/internal/ledger/store"
)

func TestService_ExportProducts(t *testing.T) {
	ledgerSvc := ledger.NewService(store.NewMemory())
	ctx := context.Background()

	_, err := ledgerSvc.AddProduct(ctx, ledger.ProductParams{
		Name:     "Kopi Sachet",
		Category: "Minuman",
		Price:    2500,
		Cost:     1800,
		Stock:    100,
		MinStock: 20,
		Supplier: "PT Kapal Api",
	})
	require.NoError(t, err)

	var buf bytes.Buffer

	svc := export.NewService(ledgerSvc)
	require.NoError(t, svc.Export(ctx, export.DatasetProducts, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"id", "name", "category", "price", "cost", "stock", "min_stock", "supplier"}, rows[0])
	assert.Equal(t, "Kopi Sachet", rows[1][1])
	assert.Equal(t, "2500", rows[1][3])
	assert.Equal(t, "PT Kapal Api", rows[1][7])
}

func TestService_ExportJournal_OneRowPerLine(t *testing.T) {
	ledgerSvc := ledger.NewService(store.NewMemory())
	ctx := context.Background()

	_, err := ledgerSvc.AddExpense(ctx, ledger.ExpenseParams{
		Description: "Listrik",
		Amount:      500000,
		Category:    ledger.CategoryOperational,
		Status:      ledger.StatusPaid,
	})
	require.NoError(t, err)

	var buf bytes.Buffer

	svc := export.NewService(ledgerSvc)
	require.NoError(t, svc.Export(ctx, export.DatasetJournal, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one debit and one credit row")

	assert.Equal(t, "debit", rows[1][5])
	assert.Equal(t, "Expense:Operasional", rows[1][6])
	assert.Equal(t, "credit", rows[2][5])
	assert.Equal(t, "Cash", rows[2][6])
	assert.Equal(t, rows[1][7], rows[2][7], "both sides carry the same amount")
}

func TestService_ExportUnknownDataset(t *testing.T) {
	svc := export.NewService(ledger.NewService(store.NewMemory()))

	var buf bytes.Buffer

	err := svc.Export(context.Background(), export.Dataset("nope"), &buf)
	assert.Error(t, err)
}
