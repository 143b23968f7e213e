package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidAmount = errors.New("budget amount must be positive")
	ErrEmptyCategory = errors.New("budget category cannot be empty")
)

// Budget is a monthly spending cap for one category. A user has at most one
// budget per category; submitting again replaces the amount.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Amount    int64 // Amount in cents
	CreatedAt time.Time
	UpdatedAt *time.Time
}
