// Package categorize suggests an expense category from a free-text
// description, learning description patterns the bookkeeper confirms.
package categorize

import (
	"context"

	"github.com/anindyar/kasbon/internal/ledger"
)

type Repository interface {
	FindMatch(ctx context.Context, description string) (ledger.ExpenseCategory, error)
	CreateMapping(ctx context.Context, pattern string, category ledger.ExpenseCategory) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category whose learned pattern matches the
// description. Unknown descriptions fall back to Lainnya.
func (s *Service) Suggest(ctx context.Context, description string) (ledger.ExpenseCategory, bool, error) {
	category, err := s.repo.FindMatch(ctx, description)
	if err != nil {
		return "", false, err
	}

	if category == "" {
		return ledger.CategoryOther, false, nil
	}

	return category, true, nil
}

// Learn remembers a new mapping between a description pattern and a
// category.
func (s *Service) Learn(ctx context.Context, pattern string, category ledger.ExpenseCategory) error {
	return s.repo.CreateMapping(ctx, pattern, category)
}
