// Package recurring contains recurring-expense management use cases.
package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// ListRecurringInput represents the input for listing recurring expenses.
type ListRecurringInput struct {
	UserID uuid.UUID
}

// ListRecurringOutput represents the list result.
type ListRecurringOutput struct {
	Expenses []*entity.RecurringExpense
}

// ListRecurringUseCase handles listing a user's recurring expenses.
type ListRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewListRecurringUseCase creates a new ListRecurringUseCase instance.
func NewListRecurringUseCase(recurringRepo adapter.RecurringExpenseRepository) *ListRecurringUseCase {
	return &ListRecurringUseCase{recurringRepo: recurringRepo}
}

// Execute lists the user's recurring expenses.
func (uc *ListRecurringUseCase) Execute(ctx context.Context, input ListRecurringInput) (*ListRecurringOutput, error) {
	expenses, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ListRecurringOutput{Expenses: expenses}, nil
}
