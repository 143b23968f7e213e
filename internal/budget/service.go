package budget

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	UpsertBudget(ctx context.Context, b *Budget) error
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert creates the budget for (user, category), or replaces its amount if
// one already exists.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, category string, amount int64) (*Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	b := &Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}
