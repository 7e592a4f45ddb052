package domain

import (
	"errors"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Expense is a single recorded business expense.
type Expense struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
