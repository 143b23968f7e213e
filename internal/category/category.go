package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category already exists")
	ErrEmptyName = errors.New("category name cannot be empty")
)

// Category is a user-defined label for grouping expenses. Expenses and
// budgets reference categories by name only, so deleting a category leaves
// existing rows pointing at a name that no longer exists.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}
