package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

type fakeRecurringRepo struct {
	expenses []*entity.RecurringExpense
	updates  int
	deletes  int
}

func (f *fakeRecurringRepo) Create(_ context.Context, expense *entity.RecurringExpense) error {
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeRecurringRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	for _, e := range f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.NewRecurringError(
		domainerror.ErrCodeRecurringNotFound, "recurring expense not found", domainerror.ErrRecurringExpenseNotFound)
}

func (f *fakeRecurringRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	var out []*entity.RecurringExpense
	for _, e := range f.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRecurringRepo) Update(_ context.Context, _ *entity.RecurringExpense) error {
	f.updates++
	return nil
}

func (f *fakeRecurringRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			f.deletes++
			return nil
		}
	}
	return domainerror.NewRecurringError(
		domainerror.ErrCodeRecurringNotFound, "recurring expense not found", domainerror.ErrRecurringExpenseNotFound)
}

type fakeTransactionRepo struct {
	transactions []*entity.TransactionRecord
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TransactionRecord, error) {
	for _, tx := range f.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.NewRecurringError(
		domainerror.ErrCodeTransactionNotFound, "transaction not found", domainerror.ErrTransactionNotFound)
}

func (f *fakeTransactionRepo) FindByDescriptionPrefix(_ context.Context, _ uuid.UUID, _ string) ([]*entity.TransactionRecord, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByDateRange(_ context.Context, _ uuid.UUID, _ []string, _, _ time.Time) ([]*entity.TransactionRecord, error) {
	return nil, nil
}

type fakeMatchedRepo struct {
	matches []*entity.MatchedInstance
}

func (f *fakeMatchedRepo) Create(_ context.Context, match *entity.MatchedInstance) error {
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeMatchedRepo) FindByRecurringExpense(_ context.Context, recurringExpenseID uuid.UUID) ([]*entity.MatchedInstance, error) {
	var out []*entity.MatchedInstance
	for _, m := range f.matches {
		if m.RecurringExpenseID == recurringExpenseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchedRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.MatchedInstance, error) {
	var out []*entity.MatchedInstance
	for _, m := range f.matches {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchedRepo) Exists(_ context.Context, recurringExpenseID, transactionID uuid.UUID) (bool, error) {
	for _, m := range f.matches {
		if m.RecurringExpenseID == recurringExpenseID && m.Transaction.ID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMatchedRepo) Delete(_ context.Context, recurringExpenseID, transactionID uuid.UUID) (int64, error) {
	for i, m := range f.matches {
		if m.RecurringExpenseID == recurringExpenseID && m.Transaction.ID == transactionID {
			f.matches = append(f.matches[:i], f.matches[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeSummaryCache struct {
	invalidated int
}

func (f *fakeSummaryCache) GetCashFlow(_ context.Context, _ uuid.UUID, _ time.Time) (*valueobject.CashFlowSummary, bool, error) {
	return nil, false, nil
}

func (f *fakeSummaryCache) SetCashFlow(_ context.Context, _ uuid.UUID, _ time.Time, _ *valueobject.CashFlowSummary) error {
	return nil
}

func (f *fakeSummaryCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	f.invalidated++
	return nil
}

func fixtureExpense(userID uuid.UUID) *entity.RecurringExpense {
	anchor := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	return entity.NewRecurringExpense(
		userID, "Rent", "RENT", -30000, valueobject.RecurrenceMonthly, anchor, 1.0, 3, nil)
}

func fixtureTransaction(userID uuid.UUID, settled time.Time) *entity.TransactionRecord {
	return &entity.TransactionRecord{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   "acc-1",
		Description: "RENT PAYMENT",
		AmountCents: -30000,
		SettledAt:   &settled,
		CreatedAt:   settled,
	}
}

func TestLinkTransaction(t *testing.T) {
	userID := uuid.New()
	expense := fixtureExpense(userID)
	tx := fixtureTransaction(userID, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC))

	recurringRepo := &fakeRecurringRepo{expenses: []*entity.RecurringExpense{expense}}
	matchedRepo := &fakeMatchedRepo{}
	cache := &fakeSummaryCache{}
	uc := NewLinkTransactionUseCase(recurringRepo, &fakeTransactionRepo{transactions: []*entity.TransactionRecord{tx}}, matchedRepo, cache)

	out, err := uc.Execute(context.Background(), LinkTransactionInput{
		UserID:             userID,
		RecurringExpenseID: expense.ID,
		TransactionID:      tx.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Match.MatchConfidence != 1.0 {
		t.Errorf("manual links carry confidence 1.0, got %v", out.Match.MatchConfidence)
	}
	if out.Expense.DetectionCount != 4 {
		t.Errorf("expected detection count 4 after the observation, got %d", out.Expense.DetectionCount)
	}
	if !out.Expense.LastObservedDate.Equal(tx.OccurredAt()) {
		t.Errorf("expected last observed %v, got %v", tx.OccurredAt(), out.Expense.LastObservedDate)
	}
	if recurringRepo.updates != 1 {
		t.Errorf("expected the expense to be persisted once, got %d updates", recurringRepo.updates)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestLinkTransaction_Duplicate(t *testing.T) {
	userID := uuid.New()
	expense := fixtureExpense(userID)
	tx := fixtureTransaction(userID, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC))

	matchedRepo := &fakeMatchedRepo{matches: []*entity.MatchedInstance{
		entity.NewManualMatch(userID, expense.ID, *tx),
	}}
	uc := NewLinkTransactionUseCase(
		&fakeRecurringRepo{expenses: []*entity.RecurringExpense{expense}},
		&fakeTransactionRepo{transactions: []*entity.TransactionRecord{tx}},
		matchedRepo, nil)

	_, err := uc.Execute(context.Background(), LinkTransactionInput{
		UserID:             userID,
		RecurringExpenseID: expense.ID,
		TransactionID:      tx.ID,
	})
	if !errors.Is(err, domainerror.ErrMatchAlreadyExists) {
		t.Fatalf("expected ErrMatchAlreadyExists, got %v", err)
	}
	if len(matchedRepo.matches) != 1 {
		t.Errorf("a duplicate link must not create a second match, got %d", len(matchedRepo.matches))
	}
}

func TestLinkTransaction_ForeignExpense(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	expense := fixtureExpense(owner)
	tx := fixtureTransaction(intruder, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC))

	uc := NewLinkTransactionUseCase(
		&fakeRecurringRepo{expenses: []*entity.RecurringExpense{expense}},
		&fakeTransactionRepo{transactions: []*entity.TransactionRecord{tx}},
		&fakeMatchedRepo{}, nil)

	_, err := uc.Execute(context.Background(), LinkTransactionInput{
		UserID:             intruder,
		RecurringExpenseID: expense.ID,
		TransactionID:      tx.ID,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyRecurringExpense) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestUnlinkTransaction(t *testing.T) {
	userID := uuid.New()
	expense := fixtureExpense(userID)
	tx := fixtureTransaction(userID, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC))

	matchedRepo := &fakeMatchedRepo{matches: []*entity.MatchedInstance{
		entity.NewManualMatch(userID, expense.ID, *tx),
	}}
	cache := &fakeSummaryCache{}
	uc := NewUnlinkTransactionUseCase(
		&fakeRecurringRepo{expenses: []*entity.RecurringExpense{expense}}, matchedRepo, cache)

	input := UnlinkTransactionInput{
		UserID:             userID,
		RecurringExpenseID: expense.ID,
		TransactionID:      tx.ID,
	}
	if err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchedRepo.matches) != 0 {
		t.Errorf("expected the link to be removed, %d remain", len(matchedRepo.matches))
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}

	// Same input again: nothing left to remove.
	err := uc.Execute(context.Background(), input)
	if !errors.Is(err, domainerror.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound on the second unlink, got %v", err)
	}
}

func TestDeleteRecurring_OwnershipCheck(t *testing.T) {
	owner := uuid.New()
	expense := fixtureExpense(owner)
	recurringRepo := &fakeRecurringRepo{expenses: []*entity.RecurringExpense{expense}}
	uc := NewDeleteRecurringUseCase(recurringRepo, nil)

	err := uc.Execute(context.Background(), DeleteRecurringInput{
		UserID:             uuid.New(),
		RecurringExpenseID: expense.ID,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyRecurringExpense) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if recurringRepo.deletes != 0 {
		t.Errorf("a foreign delete must not remove the expense")
	}

	if err := uc.Execute(context.Background(), DeleteRecurringInput{
		UserID:             owner,
		RecurringExpenseID: expense.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recurringRepo.deletes != 1 {
		t.Errorf("expected the owner delete to go through")
	}
}
