package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
)

// LinkTransactionInput represents the input for manually linking a
// transaction to a recurring expense.
type LinkTransactionInput struct {
	UserID             uuid.UUID
	RecurringExpenseID uuid.UUID
	TransactionID      uuid.UUID
}

// LinkTransactionOutput represents the created link.
type LinkTransactionOutput struct {
	Match   *entity.MatchedInstance
	Expense *entity.RecurringExpense
}

// LinkTransactionUseCase handles manual transaction-to-expense links.
// Manual links carry match confidence 1.0.
type LinkTransactionUseCase struct {
	recurringRepo   adapter.RecurringExpenseRepository
	transactionRepo adapter.TransactionRepository
	matchedRepo     adapter.MatchedInstanceRepository
	summaryCache    adapter.SummaryCache
}

// NewLinkTransactionUseCase creates a new LinkTransactionUseCase instance.
func NewLinkTransactionUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	transactionRepo adapter.TransactionRepository,
	matchedRepo adapter.MatchedInstanceRepository,
	summaryCache adapter.SummaryCache,
) *LinkTransactionUseCase {
	return &LinkTransactionUseCase{
		recurringRepo:   recurringRepo,
		transactionRepo: transactionRepo,
		matchedRepo:     matchedRepo,
		summaryCache:    summaryCache,
	}
}

// Execute links the transaction and refreshes the expense's observation
// fields (last observed date and detection count); the anchor due date is
// never touched.
func (uc *LinkTransactionUseCase) Execute(ctx context.Context, input LinkTransactionInput) (*LinkTransactionOutput, error) {
	expense, err := uc.recurringRepo.FindByID(ctx, input.RecurringExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"recurring expense does not belong to user",
			domainerror.ErrNotAuthorizedToModifyRecurringExpense,
		)
	}

	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"transaction does not belong to user",
			domainerror.ErrNotAuthorizedToModifyRecurringExpense,
		)
	}

	exists, err := uc.matchedRepo.Exists(ctx, input.RecurringExpenseID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMatchAlreadyExists,
			"transaction already linked",
			domainerror.ErrMatchAlreadyExists,
		)
	}

	match := entity.NewManualMatch(input.UserID, input.RecurringExpenseID, *tx)
	if err := uc.matchedRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	expense.RegisterObservation(tx.OccurredAt())
	if err := uc.recurringRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	if uc.summaryCache != nil {
		_ = uc.summaryCache.Invalidate(ctx, input.UserID)
	}

	return &LinkTransactionOutput{Match: match, Expense: expense}, nil
}
