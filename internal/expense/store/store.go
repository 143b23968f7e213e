package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads an expense row and returns a populated Expense.
// Expected column order: id, user_id, amount_cents, category, description, date, created_at, updated_at, deleted_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var date sql.NullTime

	if err := s.Scan(
		&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &date,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	if date.Valid {
		e.Date = date.Time
	}

	return &e, nil
}

const selectExpenseColumns = `
	id, user_id, amount_cents, category, description, date, created_at, updated_at, deleted_at
`

// nullableDate maps the zero time to SQL NULL so undated rows round-trip.
func nullableDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount_cents, category, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.Amount,
		e.Category,
		e.Description,
		nullableDate(e.Date),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND deleted_at IS NULL`

	args := []any{userID}

	argIdx := 2

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC NULLS LAST, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET amount_cents = $1, category = $2, description = $3, date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Amount,
		e.Category,
		e.Description,
		nullableDate(e.Date),
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		UPDATE expenses
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

func importLockKey(userID uuid.UUID, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(userID.String()))
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, userID uuid.UUID, minDate, maxDate time.Time) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(userID, minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, userID uuid.UUID, params []expense.CreateParams) ([]*expense.Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date        string
		Amount      int64
		Category    string
		Description string
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	hasUndated := false
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.IsZero() {
			hasUndated = true
		}

		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:        p.Date.Format(time.DateOnly),
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
		}] = struct{}{}
	}

	// Undated rows are stored with a NULL date, which a plain range
	// predicate excludes.
	window := `date >= $2 AND date <= $3`
	if hasUndated {
		window = `(date >= $2 AND date <= $3 OR date IS NULL)`
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND deleted_at IS NULL AND ` + window + `
		ORDER BY date ASC NULLS LAST`

	rows, err := itx.tx.QueryContext(ctx, query, userID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		k := lookupKey{
			Date:        e.Date.Format(time.DateOnly),
			Amount:      e.Amount,
			Category:    e.Category,
			Description: e.Description,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, expenses []*expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount_cents, category, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, e := range expenses {
		err := itx.tx.QueryRowContext(ctx, query,
			e.UserID,
			e.Amount,
			e.Category,
			e.Description,
			nullableDate(e.Date),
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	return nil
}
