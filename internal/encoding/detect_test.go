package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anindyar/kasbon/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Nama;Harga\nKopi Susu Instan;2.500\nTeh Botol;3.500\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Água Mineral;5.000\n" (Á = 0xC1).
	win1252 := []byte{
		0xC1, 'g', 'u', 'a', ' ', 'M', 'i', 'n', 'e', 'r', 'a', 'l', ';',
		'5', '.', '0', '0', '0', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(win1252))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Água Mineral;5.000\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Nama;Harga\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Nama;Harga\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	var input []byte
	input = append(input, 0xFF, 0xFE)
	for _, r := range "Nama;Harga\n" {
		input = append(input, byte(r), 0x00)
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Nama;Harga\n", string(got))
}
