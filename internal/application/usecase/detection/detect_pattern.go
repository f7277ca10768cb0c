package detection

import (
	"context"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/domain/entity"
	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// DetectPatternInput represents the input for detecting a recurring expense
// from a user-selected transaction.
type DetectPatternInput struct {
	UserID            uuid.UUID
	SeedTransactionID uuid.UUID
	Name              string // optional display name; defaults to the merchant pattern
}

// DetectPatternOutput represents the detection result.
type DetectPatternOutput struct {
	Expense          *entity.RecurringExpense
	AmountConsistent bool
	TimingConsistent bool
	LowConfidence    bool
}

// DetectPatternUseCase infers a recurring expense from a seed transaction's
// merchant history and persists the resulting definition.
type DetectPatternUseCase struct {
	transactionRepo adapter.TransactionRepository
	recurringRepo   adapter.RecurringExpenseRepository
	summaryCache    adapter.SummaryCache
	config          valueobject.DetectionConfig
}

// NewDetectPatternUseCase creates a new DetectPatternUseCase instance.
func NewDetectPatternUseCase(
	transactionRepo adapter.TransactionRepository,
	recurringRepo adapter.RecurringExpenseRepository,
	summaryCache adapter.SummaryCache,
	config valueobject.DetectionConfig,
) *DetectPatternUseCase {
	return &DetectPatternUseCase{
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
		summaryCache:    summaryCache,
		config:          config,
	}
}

// Execute runs pattern detection for the seed transaction.
func (uc *DetectPatternUseCase) Execute(ctx context.Context, input DetectPatternInput) (*DetectPatternOutput, error) {
	seed, err := uc.transactionRepo.FindByID(ctx, input.SeedTransactionID)
	if err != nil {
		return nil, err
	}
	if seed.UserID != input.UserID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"transaction does not belong to user",
			domainerror.ErrNotAuthorizedToModifyRecurringExpense,
		)
	}

	pattern := DeriveMerchantPattern(seed.Description)
	history, err := uc.transactionRepo.FindByDescriptionPrefix(ctx, input.UserID, pattern)
	if err != nil {
		return nil, err
	}

	detection := Detect(*seed, history, uc.config)

	name := input.Name
	if name == "" {
		name = detection.MerchantPattern
	}

	// The seed's own amount is canonical: the user picked this instance, so
	// the expected amount is not averaged across history.
	expense := entity.NewRecurringExpense(
		input.UserID,
		name,
		detection.MerchantPattern,
		seed.AmountCents,
		detection.RecurrenceType,
		detection.AnchorDueDate,
		detection.Confidence,
		detection.DetectionCount,
		accountSet(history, seed),
	)
	expense.NextPredictedDate = detection.NextPredictedDate

	if err := uc.recurringRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	// A new definition changes every projection for this user.
	if uc.summaryCache != nil {
		_ = uc.summaryCache.Invalidate(ctx, input.UserID)
	}

	return &DetectPatternOutput{
		Expense:          expense,
		AmountConsistent: detection.AmountConsistent,
		TimingConsistent: detection.TimingConsistent,
		LowConfidence:    detection.Confidence < uc.config.LowConfidenceThreshold,
	}, nil
}

// accountSet collects the distinct account IDs the merchant was observed on.
func accountSet(history []*entity.TransactionRecord, seed *entity.TransactionRecord) []string {
	seen := map[string]bool{}
	var ids []string

	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	add(seed.AccountID)
	for _, tx := range history {
		add(tx.AccountID)
	}
	return ids
}
