package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("expense not found")

// Uncategorized is the bucket used when an expense has no category, or its
// category no longer exists. Categories are matched by name, not by key, so
// orphaned references are legal.
const Uncategorized = "Uncategorized"

// Expense represents a single recorded expense.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      int64 // Amount in cents
	Category    string
	Description string
	Date        time.Time // Zero when the source row carried no usable date
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Bucket returns the category name used for aggregation.
func (e *Expense) Bucket() string {
	if e.Category == "" {
		return Uncategorized
	}

	return e.Category
}
