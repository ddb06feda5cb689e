package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const storeTimeout = 5 * time.Second

// FormatAmount renders a whole-peso amount with dot thousand separators,
// e.g. 4750000 -> "$ 4.750.000".
func FormatAmount(pesos int64) string {
	neg := pesos < 0
	if neg {
		pesos = -pesos
	}

	digits := strconv.FormatInt(pesos, 10)

	var b strings.Builder

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(d)
	}

	if neg {
		return "$ -" + b.String()
	}

	return "$ " + b.String()
}

// ParseAmount reads an amount typed into a form: optional "$", dots and
// spaces are ignored. Empty input is zero.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	return v, nil
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
