// Package suggest guesses categories for imported expenses from patterns
// the user taught the app earlier.
package suggest

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=suggest
type Repository interface {
	FindCategory(ctx context.Context, userID uuid.UUID, description string) (string, error)
	CreateHint(ctx context.Context, userID uuid.UUID, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Category tries to find a category for the given expense description.
// Returns empty string when no hint matches.
func (s *Service) Category(ctx context.Context, userID uuid.UUID, description string) (string, error) {
	return s.repo.FindCategory(ctx, userID, description)
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, pattern, category string) error {
	return s.repo.CreateHint(ctx, userID, pattern, category)
}
