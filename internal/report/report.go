// Package report derives presentation views from expense snapshots: totals
// per category, a rolling 7-day series, and budget utilization. Everything in
// this file is a pure function over the snapshot it is handed; amounts are
// summed as integer cents, so results do not depend on input order.
package report

import (
	"time"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/expense"
)

// CategoryTotal is the spend accumulated under one category bucket.
type CategoryTotal struct {
	Category string
	Total    int64
}

// CategoryTotals groups expenses by category and sums their amounts.
// Expenses without a category land in the Uncategorized bucket. Buckets keep
// the order in which they first appear in the snapshot.
func CategoryTotals(expenses []*expense.Expense) []CategoryTotal {
	totals := make(map[string]int64, len(expenses))

	var order []string

	for _, e := range expenses {
		bucket := e.Bucket()
		if _, seen := totals[bucket]; !seen {
			order = append(order, bucket)
		}

		totals[bucket] += e.Amount
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, bucket := range order {
		result = append(result, CategoryTotal{Category: bucket, Total: totals[bucket]})
	}

	return result
}

// SeriesPoint is one day of the weekly series.
type SeriesPoint struct {
	Label string // Abbreviated weekday, e.g. "Mon"
	Total int64
}

// WeeklySeries returns exactly 7 points covering ref and the 6 days before
// it, oldest first. An expense counts toward the calendar day its timestamp
// falls on in ref's location; days without expenses stay at zero. Undated
// expenses are left out.
func WeeklySeries(expenses []*expense.Expense, ref time.Time) []SeriesPoint {
	loc := ref.Location()

	totals := make(map[string]int64)

	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}

		totals[e.Date.In(loc).Format(time.DateOnly)] += e.Amount
	}

	points := make([]SeriesPoint, 0, 7)

	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		points = append(points, SeriesPoint{
			Label: day.Format("Mon"),
			Total: totals[day.Format(time.DateOnly)],
		})
	}

	return points
}

// TotalSpent sums every expense in the snapshot, dated or not.
func TotalSpent(expenses []*expense.Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	return total
}

// MonthToDateSpent sums expenses dated on or after the first day of ref's
// month. Undated expenses are left out.
func MonthToDateSpent(expenses []*expense.Expense, ref time.Time) int64 {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	var total int64

	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}

		if e.Date.In(ref.Location()).Before(firstOfMonth) {
			continue
		}

		total += e.Amount
	}

	return total
}

// Status classifies how much of a budget has been consumed.
type Status string

const (
	StatusOnTrack    Status = "on_track"
	StatusNearlyFull Status = "nearly_full"
	StatusOverBudget Status = "over_budget"
)

// nearlyFullNum/nearlyFullDen express the 0.8 warning threshold as a
// fraction, keeping the comparison in integer arithmetic.
const (
	nearlyFullNum = 4
	nearlyFullDen = 5
)

// BudgetStatus is one budget joined with its spend for the evaluated month.
type BudgetStatus struct {
	Category    string
	Budget      int64
	Spent       int64
	Remaining   int64 // Never negative
	Utilization float64
	Status      Status
}

// EvaluateBudget compares a category's monthly spend against its budget.
// spent >= budget is over budget (inclusive), utilization >= 0.8 is nearly
// full (inclusive), anything below is on track. A zero budget reports zero
// utilization and on-track, matching the guarded division of the dashboard.
func EvaluateBudget(category string, budgetAmount, spent int64) BudgetStatus {
	bs := BudgetStatus{
		Category: category,
		Budget:   budgetAmount,
		Spent:    spent,
	}

	if remaining := budgetAmount - spent; remaining > 0 {
		bs.Remaining = remaining
	}

	if budgetAmount <= 0 {
		bs.Status = StatusOnTrack
		return bs
	}

	bs.Utilization = float64(spent) / float64(budgetAmount)

	switch {
	case spent >= budgetAmount:
		bs.Status = StatusOverBudget
	case nearlyFullDen*spent >= nearlyFullNum*budgetAmount:
		bs.Status = StatusNearlyFull
	default:
		bs.Status = StatusOnTrack
	}

	return bs
}

// EvaluateBudgets evaluates each budget against the month's category totals,
// preserving budget order. Budgets for categories with no spend evaluate
// against zero.
func EvaluateBudgets(budgets []*budget.Budget, monthExpenses []*expense.Expense) []BudgetStatus {
	spentByCategory := make(map[string]int64, len(monthExpenses))
	for _, e := range monthExpenses {
		spentByCategory[e.Bucket()] += e.Amount
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, EvaluateBudget(b.Category, b.Amount, spentByCategory[b.Category]))
	}

	return statuses
}

// MonthRange returns the inclusive [first day, last day] window of ref's
// month, the window budget evaluation is scoped to.
func MonthRange(ref time.Time) (time.Time, time.Time) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return first, last
}
