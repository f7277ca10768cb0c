package entity

import (
	"time"

	"github.com/google/uuid"
)

// MatchedInstance links an actual transaction to a recurring expense.
// Manual links carry confidence 1.0; automatic links carry the detector score.
type MatchedInstance struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	RecurringExpenseID uuid.UUID
	Transaction        TransactionRecord
	MatchConfidence    float64
	LinkedAt           time.Time
}

// NewManualMatch creates a user-declared link between a transaction and a
// recurring expense.
func NewManualMatch(userID uuid.UUID, recurringExpenseID uuid.UUID, tx TransactionRecord) *MatchedInstance {
	return &MatchedInstance{
		ID:                 uuid.New(),
		UserID:             userID,
		RecurringExpenseID: recurringExpenseID,
		Transaction:        tx,
		MatchConfidence:    1.0,
		LinkedAt:           time.Now().UTC(),
	}
}

// NewAutomaticMatch creates a detector-scored link.
func NewAutomaticMatch(userID uuid.UUID, recurringExpenseID uuid.UUID, tx TransactionRecord, confidence float64) *MatchedInstance {
	return &MatchedInstance{
		ID:                 uuid.New(),
		UserID:             userID,
		RecurringExpenseID: recurringExpenseID,
		Transaction:        tx,
		MatchConfidence:    confidence,
		LinkedAt:           time.Now().UTC(),
	}
}
