package importer

import (
	"io"

	"github.com/darcyvale/vitrine/internal/importer/ledger"
)

// Format identifies a supported spreadsheet export format.
type Format string

const (
	// FormatLedger is the shop's sales ledger spreadsheet.
	FormatLedger Format = "ledger"
)

// Row is one imported sale before client resolution. Clients are carried
// by name; the caller matches or creates the client record.
type Row = ledger.Row

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
