// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Rows are written by the external bank-feed sync; this service only reads
// them (test fixtures insert directly).
type TransactionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AccountID   string     `gorm:"type:varchar(64);not null;index"`
	Description string     `gorm:"type:varchar(255);not null"`
	AmountCents int64      `gorm:"not null"`
	SettledAt   *time.Time `gorm:"type:timestamp;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain TransactionRecord entity.
func (m *TransactionModel) ToEntity() *entity.TransactionRecord {
	return &entity.TransactionRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		Description: m.Description,
		AmountCents: m.AmountCents,
		SettledAt:   m.SettledAt,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain TransactionRecord.
func TransactionFromEntity(tx *entity.TransactionRecord) *TransactionModel {
	return &TransactionModel{
		ID:          tx.ID,
		UserID:      tx.UserID,
		AccountID:   tx.AccountID,
		Description: tx.Description,
		AmountCents: tx.AmountCents,
		SettledAt:   tx.SettledAt,
		CreatedAt:   tx.CreatedAt,
	}
}
