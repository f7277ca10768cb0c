package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRecord is a read-only bank-feed transaction as seen by the
// engine. Dynamic feed fields are normalized into this value type at the
// persistence boundary; the algorithms never see optional metadata.
type TransactionRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   string
	Description string
	AmountCents int64 // negative = outflow
	SettledAt   *time.Time
	CreatedAt   time.Time
}

// OccurredAt returns the settlement timestamp when the feed provided one,
// falling back to the creation timestamp.
func (t TransactionRecord) OccurredAt() time.Time {
	if t.SettledAt != nil {
		return *t.SettledAt
	}
	return t.CreatedAt
}
