// Package ledger parses semicolon-separated CSV exports of the shop's
// sales ledger spreadsheet.
package ledger

import (
	"time"
)

// Row is one parsed ledger line.
type Row struct {
	Ref          string
	Model        string
	Net          int64
	Installment1 int64
	Installment2 int64
	Cost         *int64
	Date         time.Time
	ClientName   string
	Notes        string
}

// Expected header labels, as the spreadsheet names them.
const (
	colRef    = "Ref"
	colModel  = "Modelo"
	colNet    = "Neto"
	colInst1  = "Cuota 1"
	colInst2  = "Cuota 2"
	colCost   = "Costo"
	colDate   = "Fecha"
	colClient = "Cliente"
	colNotes  = "Notas"
)
