package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, userID, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	ListExpenses(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Expense, error)
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error

	BeginImport(ctx context.Context, userID uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Expense, error)
	CreateExpenses(ctx context.Context, expenses []*Expense) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      int64
	Category    string
	Description string
	Date        time.Time
}

type ListFilter struct {
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Expense, error) {
	e := &Expense{
		UserID:      userID,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Date:        params.Date,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, e *Expense) error {
	return s.repo.UpdateExpense(ctx, e)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, userID, filter)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, userID, id)
}

type ImportResult struct {
	Imported  []*Expense
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Expense
}

// ImportBatch inserts a batch of expenses, rejecting the whole batch when any
// row matches an existing expense on (date, amount, category, description).
// On conflicts the caller gets the split back and can confirm via CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, userID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Expense, len(duplicates))
	for _, d := range duplicates {
		lookup[dupKeyFor(d.Date, d.Amount, d.Category, d.Description)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[dupKeyFor(p.Date, p.Amount, p.Category, p.Description)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	expenses := paramsToExpenses(userID, newParams)
	if err := itx.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: expenses}, nil
}

// CreateBatch inserts a batch without duplicate checking.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, userID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	expenses := paramsToExpenses(userID, params)
	if err := itx.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return expenses, nil
}

type dupKey struct {
	Date        string
	Amount      int64
	Category    string
	Description string
}

func dupKeyFor(date time.Time, amount int64, category, description string) dupKey {
	return dupKey{
		Date:        date.Format(time.DateOnly),
		Amount:      amount,
		Category:    category,
		Description: description,
	}
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToExpenses(userID uuid.UUID, params []CreateParams) []*Expense {
	expenses := make([]*Expense, len(params))
	for i, p := range params {
		expenses[i] = &Expense{
			UserID:      userID,
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
			Date:        p.Date,
		}
	}

	return expenses
}
