// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRecord, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByDescriptionPrefix retrieves the user's transactions whose description
// starts with prefix, case-insensitively, ordered by occurrence date
// ascending (settlement preferred, creation fallback).
func (r *transactionRepository) FindByDescriptionPrefix(ctx context.Context, userID uuid.UUID, prefix string) ([]*entity.TransactionRecord, error) {
	var transactionModels []model.TransactionModel
	pattern := strings.ToLower(prefix) + "%"
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(description) LIKE ?", pattern).
		Order("COALESCE(settled_at, created_at) ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionRecord, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindByDateRange retrieves transactions whose occurrence date falls within
// [start, end] for the given account set. An empty account set means all of
// the user's accounts.
func (r *transactionRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, accountIDs []string, start, end time.Time) ([]*entity.TransactionRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("COALESCE(settled_at, created_at) >= ?", start).
		Where("COALESCE(settled_at, created_at) <= ?", end)

	if len(accountIDs) > 0 {
		query = query.Where("account_id IN ?", accountIDs)
	}

	var transactionModels []model.TransactionModel
	result := query.Order("COALESCE(settled_at, created_at) ASC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionRecord, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
