package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest hint pattern contained in
// the description, preferring recently taught hints on equal length.
func (s *Store) FindCategory(ctx context.Context, userID uuid.UUID, description string) (string, error) {
	query := `
		SELECT category
		FROM category_hints
		WHERE user_id = $1 AND $2 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, userID, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category hint: %w", err)
	}

	return category, nil
}

func (s *Store) CreateHint(ctx context.Context, userID uuid.UUID, pattern, category string) error {
	query := `
		INSERT INTO category_hints (user_id, pattern, category, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, pattern)
		DO UPDATE SET category = EXCLUDED.category
	`

	_, err := s.db.ExecContext(ctx, query, userID, pattern, category)
	if err != nil {
		return fmt.Errorf("creating category hint: %w", err)
	}

	return nil
}
