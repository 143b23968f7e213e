package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/export"
)

func TestService_WriteCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	userID := uuid.New()

	expenses := []*expense.Expense{
		{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      1250,
			Category:    "Food",
			Description: "Lunch",
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      700,
			Description: "Bus ticket",
		},
	}

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		ListExpenses(gomock.Any(), userID, expense.ListFilter{}).
		Return(expenses, nil)

	svc := export.NewService(expense.NewService(repo))

	var buf strings.Builder

	count, err := svc.WriteCSV(context.Background(), userID, expense.ListFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,amount,category,description", lines[0])
	assert.Equal(t, "2025-03-10,12.50,Food,Lunch", lines[1])
	assert.Equal(t, ",7.00,,Bus ticket", lines[2])
}

func TestService_Summary(t *testing.T) {
	svc := export.NewService(nil)

	expenses := []*expense.Expense{
		{Amount: 5000, Category: "Food"},
		{Amount: 3000, Category: "Food"},
		{Amount: 2000},
	}

	summary := svc.Summary(expenses)

	assert.Contains(t, summary, "* Food | 80.00")
	assert.Contains(t, summary, "* Uncategorized | 20.00")
	assert.Contains(t, summary, "Total: 100.00")
}

func TestService_SummaryFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	userID := uuid.New()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		ListExpenses(gomock.Any(), userID, expense.ListFilter{}).
		Return([]*expense.Expense{{Amount: 1200, Category: "Bills"}}, nil)

	svc := export.NewService(expense.NewService(repo))

	summary, err := svc.SummaryFor(context.Background(), userID, expense.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "* Bills | 12.00\nTotal: 12.00\n", summary)
}

func TestService_Summary_Empty(t *testing.T) {
	svc := export.NewService(nil)
	assert.Empty(t, svc.Summary(nil))
}
