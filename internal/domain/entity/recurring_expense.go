// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// RecurringExpense represents a recognized or user-declared recurring bill.
//
// AnchorDueDate is the zero point for all occurrence stepping; it never
// drifts once the expense is created. The only fields that change after
// creation are LastObservedDate and DetectionCount, refreshed as new matching
// transactions arrive.
type RecurringExpense struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	MerchantPattern     string
	ExpectedAmountCents int64
	RecurrenceType      valueobject.RecurrenceType
	AnchorDueDate       time.Time
	Confidence          float64
	DetectionCount      int
	LastObservedDate    time.Time
	NextPredictedDate   *time.Time // nil for one-time/irregular expenses
	AccountIDs          []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewRecurringExpense creates a new RecurringExpense entity.
func NewRecurringExpense(
	userID uuid.UUID,
	name string,
	merchantPattern string,
	expectedAmountCents int64,
	recurrenceType valueobject.RecurrenceType,
	anchorDueDate time.Time,
	confidence float64,
	detectionCount int,
	accountIDs []string,
) *RecurringExpense {
	now := time.Now().UTC()

	return &RecurringExpense{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                name,
		MerchantPattern:     merchantPattern,
		ExpectedAmountCents: expectedAmountCents,
		RecurrenceType:      recurrenceType,
		AnchorDueDate:       anchorDueDate,
		Confidence:          confidence,
		DetectionCount:      detectionCount,
		LastObservedDate:    anchorDueDate,
		AccountIDs:          accountIDs,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// RegisterObservation refreshes the observation fields when a new matching
// transaction arrives. The anchor is deliberately left untouched.
func (r *RecurringExpense) RegisterObservation(observedAt time.Time) {
	r.DetectionCount++
	if observedAt.After(r.LastObservedDate) {
		r.LastObservedDate = observedAt
	}
	r.UpdatedAt = time.Now().UTC()
}
