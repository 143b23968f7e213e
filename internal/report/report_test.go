package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/report"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategoryTotals(t *testing.T) {
	mon := day(2025, 3, 10)
	tue := day(2025, 3, 11)

	expenses := []*expense.Expense{
		{Amount: 5000, Category: "Food", Date: mon},
		{Amount: 3000, Category: "Food", Date: tue},
		{Amount: 2000, Category: "", Date: mon},
	}

	got := report.CategoryTotals(expenses)
	require.Len(t, got, 2)
	assert.Equal(t, report.CategoryTotal{Category: "Food", Total: 8000}, got[0])
	assert.Equal(t, report.CategoryTotal{Category: "Uncategorized", Total: 2000}, got[1])

	assert.Equal(t, int64(10000), report.TotalSpent(expenses))
}

func TestCategoryTotals_Empty(t *testing.T) {
	assert.Empty(t, report.CategoryTotals(nil))
	assert.Zero(t, report.TotalSpent(nil))
}

func TestCategoryTotals_FirstOccurrenceOrder(t *testing.T) {
	expenses := []*expense.Expense{
		{Amount: 100, Category: "Zoo"},
		{Amount: 100, Category: "Apples"},
		{Amount: 100, Category: "Zoo"},
		{Amount: 100, Category: "Bills"},
	}

	got := report.CategoryTotals(expenses)
	require.Len(t, got, 3)
	assert.Equal(t, "Zoo", got[0].Category)
	assert.Equal(t, "Apples", got[1].Category)
	assert.Equal(t, "Bills", got[2].Category)
}

func TestCategoryTotals_Idempotent(t *testing.T) {
	expenses := []*expense.Expense{
		{Amount: 1250, Category: "Food"},
		{Amount: 999, Category: "Transport"},
		{Amount: 450},
	}

	first := report.CategoryTotals(expenses)
	second := report.CategoryTotals(expenses)
	assert.Equal(t, first, second)
}

// The category buckets must partition the snapshot: their totals always sum
// back to the grand total.
func TestCategoryTotals_PartitionsTotal(t *testing.T) {
	expenses := []*expense.Expense{
		{Amount: 137, Category: "Food"},
		{Amount: 4099, Category: "Bills"},
		{Amount: 25, Category: ""},
		{Amount: 1, Category: "Food"},
		{Amount: 88888, Category: "Travel"},
	}

	var bucketSum int64
	for _, ct := range report.CategoryTotals(expenses) {
		bucketSum += ct.Total
	}

	assert.Equal(t, report.TotalSpent(expenses), bucketSum)
}

func TestWeeklySeries_EmptyOnFixedWednesday(t *testing.T) {
	wednesday := day(2025, 3, 12)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	got := report.WeeklySeries(nil, wednesday)
	require.Len(t, got, 7)

	labels := make([]string, 0, 7)
	for _, p := range got {
		labels = append(labels, p.Label)
		assert.Zero(t, p.Total)
	}

	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, labels)
}

func TestWeeklySeries_BucketsByCalendarDay(t *testing.T) {
	ref := day(2025, 3, 12) // Wednesday

	expenses := []*expense.Expense{
		{Amount: 1000, Date: day(2025, 3, 12)},
		{Amount: 500, Date: time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)},
		{Amount: 300, Date: day(2025, 3, 6)},  // oldest day in window
		{Amount: 700, Date: day(2025, 3, 5)},  // outside window
		{Amount: 900, Date: day(2025, 3, 13)}, // future, outside window
		{Amount: 111},                         // undated, excluded
	}

	got := report.WeeklySeries(expenses, ref)
	require.Len(t, got, 7)
	assert.Equal(t, int64(300), got[0].Total)  // Thu 6th
	assert.Equal(t, int64(1500), got[6].Total) // Wed 12th
	for i := 1; i < 6; i++ {
		assert.Zero(t, got[i].Total)
	}
}

func TestWeeklySeries_DayBoundaryInRefLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ref := time.Date(2025, 3, 12, 12, 0, 0, 0, loc)

	// 23:00 UTC on the 11th is already the 12th in UTC+2.
	expenses := []*expense.Expense{
		{Amount: 1000, Date: time.Date(2025, 3, 11, 23, 0, 0, 0, time.UTC)},
	}

	got := report.WeeklySeries(expenses, ref)
	require.Len(t, got, 7)
	assert.Zero(t, got[5].Total)               // Tue 11th
	assert.Equal(t, int64(1000), got[6].Total) // Wed 12th
}

func TestMonthToDateSpent(t *testing.T) {
	ref := day(2025, 3, 15)

	expenses := []*expense.Expense{
		{Amount: 1000, Date: day(2025, 3, 1)},  // first of month, inclusive
		{Amount: 2000, Date: day(2025, 3, 14)},
		{Amount: 4000, Date: day(2025, 3, 31)}, // later in month, still counted
		{Amount: 8000, Date: day(2025, 2, 28)}, // previous month
		{Amount: 500},                          // undated, excluded
	}

	assert.Equal(t, int64(7000), report.MonthToDateSpent(expenses, ref))
	assert.Equal(t, int64(15500), report.TotalSpent(expenses))
}

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name            string
		budget          int64
		spent           int64
		wantStatus      report.Status
		wantRemaining   int64
		wantUtilization float64
	}{
		{
			name:            "OnTrack",
			budget:          10000,
			spent:           5000,
			wantStatus:      report.StatusOnTrack,
			wantRemaining:   5000,
			wantUtilization: 0.5,
		},
		{
			name:            "NearlyFullAtEightyFive",
			budget:          10000,
			spent:           8500,
			wantStatus:      report.StatusNearlyFull,
			wantRemaining:   1500,
			wantUtilization: 0.85,
		},
		{
			name:            "NearlyFullBoundaryInclusive",
			budget:          10000,
			spent:           8000,
			wantStatus:      report.StatusNearlyFull,
			wantRemaining:   2000,
			wantUtilization: 0.8,
		},
		{
			name:            "JustUnderNearlyFull",
			budget:          10000,
			spent:           7999,
			wantStatus:      report.StatusOnTrack,
			wantRemaining:   2001,
			wantUtilization: 0.7999,
		},
		{
			name:            "OverBudgetBoundaryInclusive",
			budget:          10000,
			spent:           10000,
			wantStatus:      report.StatusOverBudget,
			wantRemaining:   0,
			wantUtilization: 1,
		},
		{
			name:            "OverBudgetClampsRemaining",
			budget:          10000,
			spent:           12500,
			wantStatus:      report.StatusOverBudget,
			wantRemaining:   0,
			wantUtilization: 1.25,
		},
		{
			name:            "ZeroBudgetGuardedDivision",
			budget:          0,
			spent:           1000,
			wantStatus:      report.StatusOnTrack,
			wantRemaining:   0,
			wantUtilization: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.EvaluateBudget("Food", tt.budget, tt.spent)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantRemaining, got.Remaining)
			assert.InDelta(t, tt.wantUtilization, got.Utilization, 1e-9)
			assert.GreaterOrEqual(t, got.Remaining, int64(0))
		})
	}
}

func TestEvaluateBudgets(t *testing.T) {
	budgets := []*budget.Budget{
		{Category: "Food", Amount: 10000},
		{Category: "Travel", Amount: 20000},
	}

	monthExpenses := []*expense.Expense{
		{Amount: 8500, Category: "Food"},
		{Amount: 3000, Category: "Shopping"}, // no budget, ignored
	}

	got := report.EvaluateBudgets(budgets, monthExpenses)
	require.Len(t, got, 2)

	assert.Equal(t, "Food", got[0].Category)
	assert.Equal(t, report.StatusNearlyFull, got[0].Status)
	assert.Equal(t, int64(1500), got[0].Remaining)

	assert.Equal(t, "Travel", got[1].Category)
	assert.Equal(t, report.StatusOnTrack, got[1].Status)
	assert.Zero(t, got[1].Spent)
}

func TestMonthRange(t *testing.T) {
	first, last := report.MonthRange(day(2025, 3, 15))
	assert.Equal(t, day(2025, 3, 1), first)
	assert.Equal(t, time.March, last.Month())
	assert.Equal(t, 31, last.Day())
	assert.True(t, last.Before(day(2025, 4, 1)))
}
