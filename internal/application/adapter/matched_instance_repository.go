package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// MatchedInstanceRepository defines persistence for transaction-to-expense
// links.
type MatchedInstanceRepository interface {
	// Create persists a new link.
	Create(ctx context.Context, match *entity.MatchedInstance) error

	// FindByRecurringExpense retrieves all links for one expense, with the
	// underlying transactions attached, ordered by occurrence date ascending.
	FindByRecurringExpense(ctx context.Context, recurringExpenseID uuid.UUID) ([]*entity.MatchedInstance, error)

	// FindByUser retrieves all links for a user across expenses.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MatchedInstance, error)

	// Exists reports whether a transaction is already linked to the expense.
	Exists(ctx context.Context, recurringExpenseID, transactionID uuid.UUID) (bool, error)

	// Delete removes the link between an expense and a transaction.
	// Returns the number of links removed.
	Delete(ctx context.Context, recurringExpenseID, transactionID uuid.UUID) (int64, error)
}
