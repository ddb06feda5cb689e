package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/darcyvale/vitrine/internal/encoding"
)

// Parser reads ledger CSV exports. The sheet usually carries a few title
// rows before the header, so the header is found by landmark matching
// rather than assumed on line one.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps header labels to their column position.
type colIndex map[string]int

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(records)
	if cols == nil {
		return nil, fmt.Errorf("no ledger header found: expected columns %s, %s, %s", colRef, colModel, colNet)
	}

	return parseRows(cols, records[headerIdx+1:])
}

// findHeader scans for a row containing at least the Ref, Modelo and Neto
// labels and maps every known column it finds.
func findHeader(records [][]string) (colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, label := range row {
			switch strings.TrimSpace(label) {
			case colRef, colModel, colNet, colInst1, colInst2, colCost, colDate, colClient, colNotes:
				cols[strings.TrimSpace(label)] = i
			}
		}

		_, hasRef := cols[colRef]
		_, hasModel := cols[colModel]
		_, hasNet := cols[colNet]

		if hasRef && hasModel && hasNet {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, records [][]string) ([]Row, error) {
	var rows []Row

	for _, record := range records {
		ref := field(record, cols, colRef)
		if ref == "" {
			// Blank line or footer.
			continue
		}

		net, err := parseAmount(field(record, cols, colNet))
		if err != nil {
			// Subtotal rows carry text in the amount column; skip them.
			continue
		}

		row := Row{
			Ref:        ref,
			Model:      field(record, cols, colModel),
			Net:        net,
			ClientName: field(record, cols, colClient),
			Notes:      field(record, cols, colNotes),
		}

		if v := field(record, cols, colInst1); v != "" {
			if row.Installment1, err = parseAmount(v); err != nil {
				return nil, fmt.Errorf("ref %s: installment 1: %w", ref, err)
			}
		}

		if v := field(record, cols, colInst2); v != "" {
			if row.Installment2, err = parseAmount(v); err != nil {
				return nil, fmt.Errorf("ref %s: installment 2: %w", ref, err)
			}
		}

		if v := field(record, cols, colCost); v != "" {
			cost, err := parseAmount(v)
			if err != nil {
				return nil, fmt.Errorf("ref %s: cost: %w", ref, err)
			}

			row.Cost = &cost
		}

		if v := field(record, cols, colDate); v != "" {
			row.Date, err = parseDate(v)
			if err != nil {
				return nil, fmt.Errorf("ref %s: %w", ref, err)
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func field(record []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}
