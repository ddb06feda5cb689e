package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darcyvale/vitrine/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Ref;Modelo;Neto;Cuota 1;Cuota 2;Fecha;Cliente\nROL-001;Submariner;25000000;0;0;2025-01-15;Juan Pérez\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Categoría;Año\n": í = 0xED, ñ = 0xF1.
	input := []byte{
		'C', 'a', 't', 'e', 'g', 'o', 'r', 0xED, 'a', ';',
		'A', 0xF1, 'o', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Categoría;Año\n", string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := []byte("Cliente;Teléfono\n")
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(got))
}
