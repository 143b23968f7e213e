package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/money"
	"github.com/mwhitfield/spendlog/internal/report"
)

// Service renders a user's expenses as a portable CSV document.
type Service struct {
	expenses *expense.Service
}

// NewService creates a new export Service.
func NewService(expenseSvc *expense.Service) *Service {
	return &Service{expenses: expenseSvc}
}

// WriteCSV writes the expenses matching the filter to w, one row per
// expense, and returns how many rows were written. Undated expenses get an
// empty date cell; the layout round-trips through the CSV importer.
func (s *Service) WriteCSV(ctx context.Context, userID uuid.UUID, filter expense.ListFilter, w io.Writer) (int, error) {
	expenses, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return 0, fmt.Errorf("listing expenses: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "amount", "category", "description"}); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, e := range expenses {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}

		row := []string{date, money.FormatCents(e.Amount), e.Category, e.Description}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(expenses), nil
}

// Summary creates a formatted per-category breakdown of the given expenses.
func (s *Service) Summary(expenses []*expense.Expense) string {
	var sb strings.Builder

	for _, ct := range report.CategoryTotals(expenses) {
		sb.WriteString(fmt.Sprintf("* %s | %s\n", ct.Category, money.FormatCents(ct.Total)))
	}

	if len(expenses) > 0 {
		sb.WriteString(fmt.Sprintf("Total: %s\n", money.FormatCents(report.TotalSpent(expenses))))
	}

	return sb.String()
}

// SummaryFor lists the expenses matching the filter and formats their
// breakdown.
func (s *Service) SummaryFor(ctx context.Context, userID uuid.UUID, filter expense.ListFilter) (string, error) {
	expenses, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return "", fmt.Errorf("listing expenses: %w", err)
	}

	return s.Summary(expenses), nil
}
