package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darcyvale/vitrine/internal/importer/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_FullSheet(t *testing.T) {
	csv := `Ventas 2025;;;;;;;
Actualizado;15/04/2025;;;;;;

Ref;Modelo;Neto;Cuota 1;Cuota 2;Fecha;Cliente;Notas
ROL-001;Rolex Submariner;25.000.000;10.000.000;10.000.000;15/01/2025;Juan Pérez;Cliente preferencial
CAR-004;Cartier Santos;18.000.000;;;2025-02-15;Ana López;
Total;;43.000.000;;;;;
`

	p := ledger.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ROL-001", rows[0].Ref)
	assert.Equal(t, "Rolex Submariner", rows[0].Model)
	assert.Equal(t, int64(25_000_000), rows[0].Net)
	assert.Equal(t, int64(10_000_000), rows[0].Installment1)
	assert.Equal(t, int64(10_000_000), rows[0].Installment2)
	assert.Equal(t, date(2025, 1, 15), rows[0].Date)
	assert.Equal(t, "Juan Pérez", rows[0].ClientName)
	assert.Equal(t, "Cliente preferencial", rows[0].Notes)

	assert.Equal(t, "CAR-004", rows[1].Ref)
	assert.Equal(t, int64(18_000_000), rows[1].Net)
	assert.Zero(t, rows[1].Installment1)
	assert.Equal(t, date(2025, 2, 15), rows[1].Date)
}

func TestParser_OptionalCostColumn(t *testing.T) {
	csv := `Ref;Modelo;Neto;Costo;Fecha
TIS-014;Tissot PRX;2.200.000;1.800.000;01/04/2025
`

	p := ledger.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].Cost)
	assert.Equal(t, int64(1_800_000), *rows[0].Cost)
}

func TestParser_CurrencyAndDecimals(t *testing.T) {
	csv := `Ref;Modelo;Neto
OMG-003;Omega Seamaster;$ 15.000.000,50
`

	p := ledger.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(15_000_001), rows[0].Net)
}

func TestParser_NoHeader(t *testing.T) {
	p := ledger.NewParser()

	_, err := p.Parse(strings.NewReader("just;some;cells\nwithout;a;header\n"))
	assert.Error(t, err)
}

func TestParser_BadDate(t *testing.T) {
	csv := `Ref;Modelo;Neto;Fecha
ROL-001;Submariner;25.000.000;sometime
`

	p := ledger.NewParser()

	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROL-001")
}
