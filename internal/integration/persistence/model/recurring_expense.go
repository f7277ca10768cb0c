package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// RecurringExpenseModel represents the recurring_expenses table in the database.
type RecurringExpenseModel struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name                string         `gorm:"type:varchar(255);not null"`
	MerchantPattern     string         `gorm:"type:varchar(255);not null;index"`
	ExpectedAmountCents int64          `gorm:"not null"`
	RecurrenceType      string         `gorm:"type:varchar(16);not null"`
	AnchorDueDate       time.Time      `gorm:"type:timestamp;not null"`
	Confidence          float64        `gorm:"not null"`
	DetectionCount      int            `gorm:"not null"`
	LastObservedDate    time.Time      `gorm:"type:timestamp;not null"`
	NextPredictedDate   *time.Time     `gorm:"type:timestamp"`
	AccountIDs          pq.StringArray `gorm:"type:text[]"`
	CreatedAt           time.Time      `gorm:"not null"`
	UpdatedAt           time.Time      `gorm:"not null"`
}

// TableName returns the table name for the RecurringExpenseModel.
func (RecurringExpenseModel) TableName() string {
	return "recurring_expenses"
}

// ToEntity converts a RecurringExpenseModel to a domain RecurringExpense entity.
func (m *RecurringExpenseModel) ToEntity() *entity.RecurringExpense {
	return &entity.RecurringExpense{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		MerchantPattern:     m.MerchantPattern,
		ExpectedAmountCents: m.ExpectedAmountCents,
		RecurrenceType:      valueobject.RecurrenceType(m.RecurrenceType),
		AnchorDueDate:       m.AnchorDueDate,
		Confidence:          m.Confidence,
		DetectionCount:      m.DetectionCount,
		LastObservedDate:    m.LastObservedDate,
		NextPredictedDate:   m.NextPredictedDate,
		AccountIDs:          m.AccountIDs,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// RecurringExpenseFromEntity creates a RecurringExpenseModel from a domain entity.
func RecurringExpenseFromEntity(expense *entity.RecurringExpense) *RecurringExpenseModel {
	return &RecurringExpenseModel{
		ID:                  expense.ID,
		UserID:              expense.UserID,
		Name:                expense.Name,
		MerchantPattern:     expense.MerchantPattern,
		ExpectedAmountCents: expense.ExpectedAmountCents,
		RecurrenceType:      string(expense.RecurrenceType),
		AnchorDueDate:       expense.AnchorDueDate,
		Confidence:          expense.Confidence,
		DetectionCount:      expense.DetectionCount,
		LastObservedDate:    expense.LastObservedDate,
		NextPredictedDate:   expense.NextPredictedDate,
		AccountIDs:          pq.StringArray(expense.AccountIDs),
		CreatedAt:           expense.CreatedAt,
		UpdatedAt:           expense.UpdatedAt,
	}
}
