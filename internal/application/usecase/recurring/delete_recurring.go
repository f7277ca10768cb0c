package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

// DeleteRecurringInput represents the input for removing a recurring expense.
type DeleteRecurringInput struct {
	UserID             uuid.UUID
	RecurringExpenseID uuid.UUID
}

// DeleteRecurringUseCase handles explicit removal of a recurring expense.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	summaryCache  adapter.SummaryCache
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringExpenseRepository, summaryCache adapter.SummaryCache) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{recurringRepo: recurringRepo, summaryCache: summaryCache}
}

// Execute removes the recurring expense after an ownership check.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) error {
	expense, err := uc.recurringRepo.FindByID(ctx, input.RecurringExpenseID)
	if err != nil {
		return err
	}
	if expense.UserID != input.UserID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"recurring expense does not belong to user",
			domainerror.ErrNotAuthorizedToModifyRecurringExpense,
		)
	}

	if err := uc.recurringRepo.Delete(ctx, input.RecurringExpenseID); err != nil {
		return err
	}

	if uc.summaryCache != nil {
		_ = uc.summaryCache.Invalidate(ctx, input.UserID)
	}
	return nil
}
