package categorize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anindyar/kasbon/internal/categorize"
	"github.com/anindyar/kasbon/internal/categorize/store"
	"github.com/anindyar/kasbon/internal/ledger"
)

func TestService_SuggestAndLearn(t *testing.T) {
	svc := categorize.NewService(store.NewMemory())
	ctx := context.Background()

	category, matched, err := svc.Suggest(ctx, "Bayar listrik Maret")
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, ledger.CategoryOther, category, "unknown descriptions fall back to Lainnya")

	require.NoError(t, svc.Learn(ctx, "listrik", ledger.CategoryOperational))

	category, matched, err = svc.Suggest(ctx, "Bayar LISTRIK April")
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, ledger.CategoryOperational, category, "matching is case-insensitive")
}

func TestService_LongestPatternWins(t *testing.T) {
	svc := categorize.NewService(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, svc.Learn(ctx, "iklan", ledger.CategorySales))
	require.NoError(t, svc.Learn(ctx, "iklan koran", ledger.CategoryAdministrative))

	category, matched, err := svc.Suggest(ctx, "Pasang iklan koran Minggu")
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, ledger.CategoryAdministrative, category)
}
