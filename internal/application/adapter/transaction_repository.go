// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// TransactionRepository defines the read-only transaction store the engine
// consumes. Transactions are synced by an external bank feed; this engine
// never writes them.
type TransactionRepository interface {
	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRecord, error)

	// FindByDescriptionPrefix retrieves transactions whose description starts
	// with prefix (case-insensitive), ordered by occurrence date ascending.
	// This is the history query behind pattern detection.
	FindByDescriptionPrefix(ctx context.Context, userID uuid.UUID, prefix string) ([]*entity.TransactionRecord, error)

	// FindByDateRange retrieves transactions for the given account set whose
	// occurrence date falls within [start, end], ordered by occurrence date
	// ascending. An empty account set means all of the user's accounts.
	FindByDateRange(ctx context.Context, userID uuid.UUID, accountIDs []string, start, end time.Time) ([]*entity.TransactionRecord, error)
}
