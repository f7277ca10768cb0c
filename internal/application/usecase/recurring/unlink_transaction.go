package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

// UnlinkTransactionInput represents the input for removing a manual link.
type UnlinkTransactionInput struct {
	UserID             uuid.UUID
	RecurringExpenseID uuid.UUID
	TransactionID      uuid.UUID
}

// UnlinkTransactionUseCase removes a transaction-to-expense link.
type UnlinkTransactionUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	matchedRepo   adapter.MatchedInstanceRepository
	summaryCache  adapter.SummaryCache
}

// NewUnlinkTransactionUseCase creates a new UnlinkTransactionUseCase instance.
func NewUnlinkTransactionUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	matchedRepo adapter.MatchedInstanceRepository,
	summaryCache adapter.SummaryCache,
) *UnlinkTransactionUseCase {
	return &UnlinkTransactionUseCase{
		recurringRepo: recurringRepo,
		matchedRepo:   matchedRepo,
		summaryCache:  summaryCache,
	}
}

// Execute removes the link. Observation fields on the expense are left as
// they are; unlinking never rewinds last observed date or detection count.
func (uc *UnlinkTransactionUseCase) Execute(ctx context.Context, input UnlinkTransactionInput) error {
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

	deleted, err := uc.matchedRepo.Delete(ctx, input.RecurringExpenseID, input.TransactionID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeMatchNotFound,
			"link not found",
			domainerror.ErrMatchNotFound,
		)
	}

	if uc.summaryCache != nil {
		_ = uc.summaryCache.Invalidate(ctx, input.UserID)
	}

	return nil
}
