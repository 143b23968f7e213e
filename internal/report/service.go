package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/expense"
)

// Service fetches snapshots through the domain services and derives views
// from them. It holds no state between calls; every view is recomputed from
// a fresh snapshot.
type Service struct {
	expenses *expense.Service
	budgets  *budget.Service
}

func NewService(expenses *expense.Service, budgets *budget.Service) *Service {
	return &Service{
		expenses: expenses,
		budgets:  budgets,
	}
}

// Dashboard is the spending overview: where money went, the last week's
// rhythm, and the running totals.
type Dashboard struct {
	ByCategory   []CategoryTotal
	Weekly       []SeriesPoint
	MonthToDate  int64
	TotalSpent   int64
	ExpenseCount int
}

func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID, ref time.Time) (*Dashboard, error) {
	expenses, err := s.expenses.List(ctx, userID, expense.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return &Dashboard{
		ByCategory:   CategoryTotals(expenses),
		Weekly:       WeeklySeries(expenses, ref),
		MonthToDate:  MonthToDateSpent(expenses, ref),
		TotalSpent:   TotalSpent(expenses),
		ExpenseCount: len(expenses),
	}, nil
}

// BudgetOverview evaluates every budget against the spend of ref's calendar
// month, in budget list order.
func (s *Service) BudgetOverview(ctx context.Context, userID uuid.UUID, ref time.Time) ([]BudgetStatus, error) {
	budgets, err := s.budgets.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	first, last := MonthRange(ref)

	monthExpenses, err := s.expenses.List(ctx, userID, expense.ListFilter{
		StartDate: &first,
		EndDate:   &last,
	})
	if err != nil {
		return nil, fmt.Errorf("listing month expenses: %w", err)
	}

	return EvaluateBudgets(budgets, monthExpenses), nil
}
