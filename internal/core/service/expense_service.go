package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ExpenseService implements expense tracking use cases.
type ExpenseService struct {
	repo   ports.ExpenseRepository
	logger zerolog.Logger
}

func NewExpenseService(repo ports.ExpenseRepository, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, logger: logger}
}

func (s *ExpenseService) Create(ctx context.Context, actor ports.Actor, input ports.ExpenseInput) (*domain.Expense, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	expense := &domain.Expense{
		Title:      input.Title,
		Category:   input.Category,
		Amount:     input.Amount,
		Date:       date,
		Notes:      input.Notes,
		RecordedBy: actor.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("expense_id", created.ID).Str("category", created.Category).Msg("expense recorded")
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (*domain.Expense, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context) ([]*domain.Expense, error) {
	return s.repo.List(ctx)
}

func (s *ExpenseService) Update(ctx context.Context, id string, input ports.ExpenseInput) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Title = input.Title
	expense.Category = input.Category
	expense.Amount = input.Amount
	if !input.Date.IsZero() {
		expense.Date = input.Date
	}
	expense.Notes = input.Notes

	return s.repo.Update(ctx, expense)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ExpenseService) Summary(ctx context.Context) ([]ports.CategoryTotal, error) {
	return s.repo.SummaryByCategory(ctx)
}
