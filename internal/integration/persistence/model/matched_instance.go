package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// MatchedInstanceModel represents the matched_instances table, the link rows
// between recurring expenses and transactions.
type MatchedInstanceModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index"`
	RecurringExpenseID uuid.UUID `gorm:"type:uuid;not null;index:idx_match_expense_tx,unique"`
	TransactionID      uuid.UUID `gorm:"type:uuid;not null;index:idx_match_expense_tx,unique"`
	MatchConfidence    float64   `gorm:"not null"`
	LinkedAt           time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the MatchedInstanceModel.
func (MatchedInstanceModel) TableName() string {
	return "matched_instances"
}

// ToEntity converts a MatchedInstanceModel to a domain MatchedInstance entity.
// The Transaction relationship must be preloaded.
func (m *MatchedInstanceModel) ToEntity() *entity.MatchedInstance {
	instance := &entity.MatchedInstance{
		ID:                 m.ID,
		UserID:             m.UserID,
		RecurringExpenseID: m.RecurringExpenseID,
		MatchConfidence:    m.MatchConfidence,
		LinkedAt:           m.LinkedAt,
	}
	if m.Transaction != nil {
		instance.Transaction = *m.Transaction.ToEntity()
	}
	return instance
}

// MatchedInstanceFromEntity creates a MatchedInstanceModel from a domain entity.
func MatchedInstanceFromEntity(match *entity.MatchedInstance) *MatchedInstanceModel {
	return &MatchedInstanceModel{
		ID:                 match.ID,
		UserID:             match.UserID,
		RecurringExpenseID: match.RecurringExpenseID,
		TransactionID:      match.Transaction.ID,
		MatchConfidence:    match.MatchConfidence,
		LinkedAt:           match.LinkedAt,
	}
}
