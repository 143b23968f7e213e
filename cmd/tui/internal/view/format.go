package view

import (
	"context"
	"time"

	"github.com/mwhitfield/spendlog/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents into a human-readable string.
func FormatAmount(cents int64) string {
	return money.FormatCents(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD. Undated expenses render as
// a dash.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
