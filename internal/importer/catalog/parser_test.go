package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_IndonesianLayout(t *testing.T) {
	input := strings.Join([]string{
		"Nama;Kategori;Harga;Harga Pokok;Stok;Stok Minimum;Supplier",
		"Kopi Sachet;Minuman;2.500;1.800;100;20;PT Kapal Api",
		"Gula 1kg;Sembako;Rp 17.500;15.000;40;10;Toko Grosir",
	}, "\n")

	products, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Kopi Sachet", products[0].Name)
	assert.Equal(t, "Minuman", products[0].Category)
	assert.Equal(t, int64(2500), products[0].Price)
	assert.Equal(t, int64(1800), products[0].Cost)
	assert.Equal(t, 100, products[0].Stock)
	assert.Equal(t, 20, products[0].MinStock)
	assert.Equal(t, "PT Kapal Api", products[0].Supplier)

	assert.Equal(t, int64(17500), products[1].Price, "Rp prefix is tolerated")
}

func TestParser_EnglishLayout(t *testing.T) {
	input := strings.Join([]string{
		"Name,Category,Price,Cost,Stock,Min Stock,Supplier",
		"Instant Noodles,Food,3500,2800,60,15,Indofood",
	}, "\n")

	products, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Instant Noodles", products[0].Name)
	assert.Equal(t, int64(3500), products[0].Price)
}

func TestParser_SkipsPreamble(t *testing.T) {
	input := strings.Join([]string{
		"Daftar Produk Toko Berkah;;;;;;",
		"Per 01-06-2025;;;;;;",
		"Nama;Kategori;Harga;Harga Pokok;Stok;Stok Minimum;Supplier",
		"Teh Celup;Minuman;9.000;7.000;25;5;Sariwangi",
		";;;;;;",
	}, "\n")

	products, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1, "preamble and empty rows are skipped")
	assert.Equal(t, "Teh Celup", products[0].Name)
}

func TestParser_NoMatchingLayout(t *testing.T) {
	input := "foo;bar\n1;2\n"

	_, err := NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParser_InvalidPrice(t *testing.T) {
	input := strings.Join([]string{
		"Nama;Harga",
		"Sabun;abc",
	}, "\n")

	_, err := NewParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestParseRupiah(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"12.500", 12500},
		{"Rp 12.500", 12500},
		{"12500", 12500},
		{"1.234.567", 1234567},
		{"2.500,50", 2501},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseRupiah(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
