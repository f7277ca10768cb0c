package dto

import (
	"time"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// DetectRequest represents the request body for pattern detection.
type DetectRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// LinkTransactionRequest represents the request body for manually linking a
// transaction to a recurring expense.
type LinkTransactionRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// RecurringExpenseDTO represents a recurring expense in responses.
type RecurringExpenseDTO struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	MerchantPattern     string     `json:"merchant_pattern"`
	ExpectedAmountCents int64      `json:"expected_amount_cents"`
	RecurrenceType      string     `json:"recurrence_type"`
	AnchorDueDate       time.Time  `json:"anchor_due_date"`
	Confidence          float64    `json:"confidence"`
	DetectionCount      int        `json:"detection_count"`
	LastObservedDate    time.Time  `json:"last_observed_date"`
	NextPredictedDate   *time.Time `json:"next_predicted_date,omitempty"`
	AccountIDs          []string   `json:"account_ids,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ToRecurringExpenseDTO converts a domain entity to its response shape.
func ToRecurringExpenseDTO(expense *entity.RecurringExpense) RecurringExpenseDTO {
	return RecurringExpenseDTO{
		ID:                  expense.ID.String(),
		Name:                expense.Name,
		MerchantPattern:     expense.MerchantPattern,
		ExpectedAmountCents: expense.ExpectedAmountCents,
		RecurrenceType:      string(expense.RecurrenceType),
		AnchorDueDate:       expense.AnchorDueDate,
		Confidence:          expense.Confidence,
		DetectionCount:      expense.DetectionCount,
		LastObservedDate:    expense.LastObservedDate,
		NextPredictedDate:   expense.NextPredictedDate,
		AccountIDs:          expense.AccountIDs,
		CreatedAt:           expense.CreatedAt,
	}
}

// DetectResponse represents the result of pattern detection.
type DetectResponse struct {
	Expense       RecurringExpenseDTO `json:"expense"`
	LowConfidence bool                `json:"low_confidence"`
}

// ListRecurringResponse represents the recurring expense list.
type ListRecurringResponse struct {
	Expenses []RecurringExpenseDTO `json:"expenses"`
}

// MatchedInstanceDTO represents a transaction link in responses.
type MatchedInstanceDTO struct {
	ID              string    `json:"id"`
	TransactionID   string    `json:"transaction_id"`
	Description     string    `json:"description"`
	AmountCents     int64     `json:"amount_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
	MatchConfidence float64   `json:"match_confidence"`
	LinkedAt        time.Time `json:"linked_at"`
}

// ToMatchedInstanceDTO converts a domain match to its response shape.
func ToMatchedInstanceDTO(match *entity.MatchedInstance) MatchedInstanceDTO {
	return MatchedInstanceDTO{
		ID:              match.ID.String(),
		TransactionID:   match.Transaction.ID.String(),
		Description:     match.Transaction.Description,
		AmountCents:     match.Transaction.AmountCents,
		OccurredAt:      match.Transaction.OccurredAt(),
		MatchConfidence: match.MatchConfidence,
		LinkedAt:        match.LinkedAt,
	}
}

// LinkTransactionResponse represents a created link with the refreshed expense.
type LinkTransactionResponse struct {
	Match   MatchedInstanceDTO  `json:"match"`
	Expense RecurringExpenseDTO `json:"expense"`
}
