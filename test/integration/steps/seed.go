package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
	"github.com/billtrack/recurring-engine/internal/integration/persistence"
	"github.com/billtrack/recurring-engine/internal/integration/persistence/model"
)

// registerSeedSteps registers fixture steps that write directly to the test
// database, standing in for the external bank-feed sync.
func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am user "([^"]*)"$`, iAmUser)
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Step(`^a transaction "([^"]*)" "([^"]*)" of (-?\d+) cents settled on day (\d+) of the current month$`, aTransactionSettledThisMonth)
	ctx.Step(`^a "([^"]*)" recurring expense "([^"]*)" of (-?\d+) cents anchored on day (\d+) of the current month$`, aRecurringExpenseAnchoredThisMonth)
	ctx.Step(`^transaction "([^"]*)" is linked to expense "([^"]*)"$`, transactionIsLinkedToExpense)
}

func (tc *TestContext) currentUserID() (uuid.UUID, error) {
	raw, ok := tc.ids["current-user"]
	if !ok {
		return uuid.Nil, fmt.Errorf("no current user; add an 'I am user' step first")
	}
	return uuid.Parse(raw)
}

func iAmUser(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	// Same name, same ID: scenarios can refer to users symbolically.
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
	tc.ids["current-user"] = userID.String()
	tc.requestHeaders["X-User-ID"] = userID.String()
	return nil
}

func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	userID, err := tc.currentUserID()
	if err != nil {
		return err
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("transactions table needs a header and at least one row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, required := range []string{"alias", "description", "amount_cents", "settled_at"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("transactions table is missing column %q", required)
		}
	}

	for _, row := range table.Rows[1:] {
		amount, err := strconv.ParseInt(row.Cells[columns["amount_cents"]].Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount_cents: %w", err)
		}
		settled, err := time.Parse("2006-01-02", row.Cells[columns["settled_at"]].Value)
		if err != nil {
			return fmt.Errorf("invalid settled_at: %w", err)
		}

		tx := &entity.TransactionRecord{
			ID:          uuid.New(),
			UserID:      userID,
			AccountID:   "acc-1",
			Description: row.Cells[columns["description"]].Value,
			AmountCents: amount,
			SettledAt:   &settled,
			CreatedAt:   settled,
		}
		if err := seedTransaction(tc, tx); err != nil {
			return err
		}
		tc.ids[row.Cells[columns["alias"]].Value] = tx.ID.String()
	}
	return nil
}

func aTransactionSettledThisMonth(ctx context.Context, alias, description string, amountCents, day int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	userID, err := tc.currentUserID()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	settled := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
	tx := &entity.TransactionRecord{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   "acc-1",
		Description: description,
		AmountCents: int64(amountCents),
		SettledAt:   &settled,
		CreatedAt:   settled,
	}
	if err := seedTransaction(tc, tx); err != nil {
		return err
	}
	tc.ids[alias] = tx.ID.String()
	return nil
}

func aRecurringExpenseAnchoredThisMonth(ctx context.Context, recurrenceType, name string, amountCents, day int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	userID, err := tc.currentUserID()
	if err != nil {
		return err
	}

	rt := valueobject.RecurrenceType(recurrenceType)
	if !rt.IsValid() {
		return fmt.Errorf("unknown recurrence type %q", recurrenceType)
	}

	now := time.Now().UTC()
	anchor := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
	expense := entity.NewRecurringExpense(userID, name, name, int64(amountCents), rt, anchor, 1.0, 3, []string{"acc-1"})

	repo := persistence.NewRecurringExpenseRepository(tc.db)
	if err := repo.Create(context.Background(), expense); err != nil {
		return fmt.Errorf("failed to seed recurring expense: %w", err)
	}
	tc.ids[name] = expense.ID.String()
	return nil
}

func transactionIsLinkedToExpense(ctx context.Context, txAlias, expenseAlias string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	userID, err := tc.currentUserID()
	if err != nil {
		return err
	}

	txID, err := uuid.Parse(tc.ids[txAlias])
	if err != nil {
		return fmt.Errorf("unknown transaction alias %q", txAlias)
	}
	expenseID, err := uuid.Parse(tc.ids[expenseAlias])
	if err != nil {
		return fmt.Errorf("unknown expense alias %q", expenseAlias)
	}

	txRepo := persistence.NewTransactionRepository(tc.db)
	tx, err := txRepo.FindByID(context.Background(), txID)
	if err != nil {
		return err
	}

	matchRepo := persistence.NewMatchedInstanceRepository(tc.db)
	return matchRepo.Create(context.Background(), entity.NewManualMatch(userID, expenseID, *tx))
}

func seedTransaction(tc *TestContext, tx *entity.TransactionRecord) error {
	if err := tc.db.Create(model.TransactionFromEntity(tx)).Error; err != nil {
		return fmt.Errorf("failed to seed transaction: %w", err)
	}
	return nil
}
