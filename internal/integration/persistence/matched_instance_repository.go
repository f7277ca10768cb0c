package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/integration/persistence/model"
)

// matchedInstanceRepository implements the adapter.MatchedInstanceRepository interface.
type matchedInstanceRepository struct {
	db *gorm.DB
}

// NewMatchedInstanceRepository creates a new matched instance repository instance.
func NewMatchedInstanceRepository(db *gorm.DB) adapter.MatchedInstanceRepository {
	return &matchedInstanceRepository{
		db: db,
	}
}

// Create creates a new matched instance in the database.
func (r *matchedInstanceRepository) Create(ctx context.Context, match *entity.MatchedInstance) error {
	matchModel := model.MatchedInstanceFromEntity(match)
	result := r.db.WithContext(ctx).Create(matchModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByRecurringExpense retrieves all links for one expense with their
// transactions, ordered by occurrence date ascending.
func (r *matchedInstanceRepository) FindByRecurringExpense(ctx context.Context, recurringExpenseID uuid.UUID) ([]*entity.MatchedInstance, error) {
	var matchModels []model.MatchedInstanceModel
	result := r.db.WithContext(ctx).
		Preload("Transaction").
		Select("matched_instances.*").
		Joins("JOIN transactions ON transactions.id = matched_instances.transaction_id").
		Where("matched_instances.recurring_expense_id = ?", recurringExpenseID).
		Order("COALESCE(transactions.settled_at, transactions.created_at) ASC").
		Find(&matchModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toMatchedEntities(matchModels), nil
}

// FindByUser retrieves all links for a user across expenses, with their
// transactions attached.
func (r *matchedInstanceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MatchedInstance, error) {
	var matchModels []model.MatchedInstanceModel
	result := r.db.WithContext(ctx).
		Preload("Transaction").
		Where("user_id = ?", userID).
		Find(&matchModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toMatchedEntities(matchModels), nil
}

// Exists reports whether a transaction is already linked to the expense.
func (r *matchedInstanceRepository) Exists(ctx context.Context, recurringExpenseID, transactionID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.MatchedInstanceModel{}).
		Where("recurring_expense_id = ? AND transaction_id = ?", recurringExpenseID, transactionID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Delete removes the link between an expense and a transaction, returning how
// many rows went away.
func (r *matchedInstanceRepository) Delete(ctx context.Context, recurringExpenseID, transactionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("recurring_expense_id = ? AND transaction_id = ?", recurringExpenseID, transactionID).
		Delete(&model.MatchedInstanceModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toMatchedEntities(matchModels []model.MatchedInstanceModel) []*entity.MatchedInstance {
	matches := make([]*entity.MatchedInstance, len(matchModels))
	for i, mm := range matchModels {
		matches[i] = mm.ToEntity()
	}
	return matches
}
