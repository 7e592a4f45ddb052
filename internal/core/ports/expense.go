package ports

import (
	"context"
	"time"

	"github.com/cedrulion/murika-farm/internal/core/domain"
)

// ExpenseInput carries the writable expense fields.
type ExpenseInput struct {
	Title    string
	Category string
	Amount   float64
	Date     time.Time
	Notes    string
}

// CategoryTotal is one row of the per-category expense summary.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	// SummaryByCategory aggregates amount totals grouped by category,
	// ordered by total descending.
	SummaryByCategory(ctx context.Context) ([]CategoryTotal, error)
}

// ExpenseService defines expense use cases.
type ExpenseService interface {
	Create(ctx context.Context, actor Actor, input ExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
	Update(ctx context.Context, id string, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) ([]CategoryTotal, error)
}
