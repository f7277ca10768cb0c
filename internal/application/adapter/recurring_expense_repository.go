package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// RecurringExpenseRepository defines persistence for recurring-expense
// definitions.
type RecurringExpenseRepository interface {
	// Create persists a new recurring expense.
	Create(ctx context.Context, expense *entity.RecurringExpense) error

	// FindByID retrieves a recurring expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error)

	// FindByUser retrieves all recurring expenses for a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error)

	// Update persists observation-field refreshes (detection count,
	// last observed date). The anchor is never rewritten.
	Update(ctx context.Context, expense *entity.RecurringExpense) error

	// Delete removes a recurring expense and its matched instances.
	Delete(ctx context.Context, id uuid.UUID) error
}
