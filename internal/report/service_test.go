package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/report"
)

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	ref := day(2025, 3, 12) // Wednesday

	expenseRepo := expense.NewMockRepository(ctrl)
	budgetRepo := budget.NewMockRepository(ctrl)

	expenseRepo.EXPECT().
		ListExpenses(gomock.Any(), userID, expense.ListFilter{}).
		Return([]*expense.Expense{
			{Amount: 5000, Category: "Food", Date: day(2025, 3, 10)},
			{Amount: 3000, Category: "Food", Date: day(2025, 3, 11)},
			{Amount: 2000, Category: "", Date: day(2025, 2, 10)},
		}, nil)

	svc := report.NewService(expense.NewService(expenseRepo), budget.NewService(budgetRepo))

	dash, err := svc.Dashboard(context.Background(), userID, ref)
	require.NoError(t, err)

	require.Len(t, dash.ByCategory, 2)
	assert.Equal(t, int64(8000), dash.ByCategory[0].Total)
	assert.Equal(t, "Uncategorized", dash.ByCategory[1].Category)

	require.Len(t, dash.Weekly, 7)
	assert.Equal(t, int64(10000), dash.TotalSpent)
	assert.Equal(t, int64(8000), dash.MonthToDate)
	assert.Equal(t, 3, dash.ExpenseCount)
}

func TestService_BudgetOverview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	ref := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	expenseRepo := expense.NewMockRepository(ctrl)
	budgetRepo := budget.NewMockRepository(ctrl)

	budgetRepo.EXPECT().
		ListBudgets(gomock.Any(), userID).
		Return([]*budget.Budget{
			{Category: "Food", Amount: 10000},
		}, nil)

	expenseRepo.EXPECT().
		ListExpenses(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error) {
			// The snapshot must be scoped to the reference month.
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.EndDate)
			assert.Equal(t, day(2025, 3, 1), *filter.StartDate)
			assert.Equal(t, time.March, filter.EndDate.Month())
			assert.Equal(t, 31, filter.EndDate.Day())

			return []*expense.Expense{
				{Amount: 8500, Category: "Food", Date: day(2025, 3, 10)},
			}, nil
		})

	svc := report.NewService(expense.NewService(expenseRepo), budget.NewService(budgetRepo))

	statuses, err := svc.BudgetOverview(context.Background(), userID, ref)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, report.StatusNearlyFull, statuses[0].Status)
	assert.Equal(t, int64(8500), statuses[0].Spent)
	assert.Equal(t, int64(1500), statuses[0].Remaining)
}
