package detection

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

func TestDeriveMerchantPattern(t *testing.T) {
	cases := []struct {
		description string
		expected    string
	}{
		{"NETFLIX 123456", "NETFLIX"},
		{"NETFLIX", "NETFLIX"},
		{"SPOTIFY P2L1 9981", "SPOTIFY"},
		{"AGL ENERGY #48213", "AGL ENERGY"},
		{"WOOLWORTHS 1234 SYDNEY", "WOOLWORTHS 1234 SYDNEY"},
		{"7-ELEVEN 2041", "7-ELEVEN"},
		{"  GYM   MEMBERSHIP  ", "GYM MEMBERSHIP"},
		{"12345", "12345"}, // first token is always kept
		{"", ""},
	}

	for _, c := range cases {
		if got := DeriveMerchantPattern(c.description); got != c.expected {
			t.Errorf("DeriveMerchantPattern(%q) = %q, want %q", c.description, got, c.expected)
		}
	}
}

// historyOf builds an ordered transaction history with the given day gaps
// between entries, all with the same description and amount.
func historyOf(userID uuid.UUID, start time.Time, amountCents int64, gapsDays ...int) []*entity.TransactionRecord {
	history := []*entity.TransactionRecord{txAt(userID, start, amountCents)}
	current := start
	for _, gap := range gapsDays {
		current = current.AddDate(0, 0, gap)
		history = append(history, txAt(userID, current, amountCents))
	}
	return history
}

func txAt(userID uuid.UUID, settledAt time.Time, amountCents int64) *entity.TransactionRecord {
	settled := settledAt
	return &entity.TransactionRecord{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   "acc-1",
		Description: fmt.Sprintf("NETFLIX %d", settledAt.Unix()),
		AmountCents: amountCents,
		SettledAt:   &settled,
		CreatedAt:   settledAt.Add(48 * time.Hour), // settlement wins over creation
	}
}

func TestDetect_MonthlySubscription(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	// Seed plus six prior monthly charges of $22.99 with 28-31 day gaps.
	history := historyOf(userID, start, -2299, 31, 28, 31, 30, 31, 30)
	seed := *history[len(history)-1]
	seed.Description = "NETFLIX 123456"

	detection := Detect(seed, history, valueobject.DefaultDetectionConfig())

	if detection.MerchantPattern != "NETFLIX" {
		t.Errorf("expected pattern NETFLIX, got %q", detection.MerchantPattern)
	}
	if detection.RecurrenceType != valueobject.RecurrenceMonthly {
		t.Errorf("expected monthly, got %s", detection.RecurrenceType)
	}
	if !detection.AmountConsistent {
		t.Error("expected amount consistency")
	}
	if !detection.TimingConsistent {
		t.Error("expected timing consistency")
	}
	if detection.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", detection.Confidence)
	}
	if !detection.AnchorDueDate.Equal(history[len(history)-1].OccurredAt()) {
		t.Errorf("expected anchor on most recent entry, got %v", detection.AnchorDueDate)
	}
	if detection.NextPredictedDate == nil {
		t.Fatal("expected a next predicted date")
	}
	if want := detection.AnchorDueDate.AddDate(0, 1, 0); !detection.NextPredictedDate.Equal(want) {
		t.Errorf("expected next predicted %v, got %v", want, *detection.NextPredictedDate)
	}
	if detection.DetectionCount != len(history) {
		t.Errorf("expected detection count %d, got %d", len(history), detection.DetectionCount)
	}
}

func TestDetect_SingleTransactionIsOneTime(t *testing.T) {
	userID := uuid.New()
	seedTime := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	seed := *txAt(userID, seedTime, -4500)
	history := []*entity.TransactionRecord{txAt(userID, seedTime, -4500)}

	detection := Detect(seed, history, valueobject.DefaultDetectionConfig())

	if detection.RecurrenceType != valueobject.RecurrenceOneTime {
		t.Errorf("expected one-time, got %s", detection.RecurrenceType)
	}
	if detection.Confidence != 0.2 {
		t.Errorf("expected confidence 0.2, got %f", detection.Confidence)
	}
	if detection.NextPredictedDate != nil {
		t.Errorf("expected no prediction for one-time, got %v", *detection.NextPredictedDate)
	}
}

func TestDetect_Classification(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	cfg := valueobject.DefaultDetectionConfig()

	cases := []struct {
		name     string
		gaps     []int
		expected valueobject.RecurrenceType
	}{
		{"weekly", []int{7, 7, 7, 7}, valueobject.RecurrenceWeekly},
		{"fortnightly", []int{14, 14, 13, 15}, valueobject.RecurrenceFortnightly},
		{"monthly", []int{30, 31, 28, 31}, valueobject.RecurrenceMonthly},
		{"quarterly", []int{90, 92, 89}, valueobject.RecurrenceQuarterly},
		{"yearly", []int{365, 366}, valueobject.RecurrenceYearly},
		{"dispersed gaps are irregular", []int{7, 60, 3, 200}, valueobject.RecurrenceIrregular},
		{"gaps outside every band are irregular", []int{45, 44, 46}, valueobject.RecurrenceIrregular},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			history := historyOf(userID, start, -1000, c.gaps...)
			seed := *history[len(history)-1]

			detection := Detect(seed, history, cfg)
			if detection.RecurrenceType != c.expected {
				t.Errorf("expected %s, got %s", c.expected, detection.RecurrenceType)
			}
		})
	}
}

func TestDetect_AmountInconsistencyLowersConfidence(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	cfg := valueobject.DefaultDetectionConfig()

	history := historyOf(userID, start, -1000, 30, 31)
	history[1].AmountCents = -5000 // way outside the 15% tolerance

	seed := *history[len(history)-1]
	detection := Detect(seed, history, cfg)

	if detection.AmountConsistent {
		t.Error("expected amount inconsistency")
	}
	// 0.2 base + 0.2 partial amount + 0.4 timing.
	if detection.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %f", detection.Confidence)
	}
}

func TestDetect_ConfidenceAlwaysInBounds(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	cfg := valueobject.DefaultDetectionConfig()

	// Sweep over synthetic histories with growing irregularity.
	for size := 0; size < 8; size++ {
		gaps := make([]int, size)
		amount := int64(-1500)
		for i := range gaps {
			gaps[i] = 3 + i*11 // increasingly dispersed
		}

		history := historyOf(userID, start, amount, gaps...)
		for i := range history {
			history[i].AmountCents = amount * int64(i+1) // inconsistent amounts
		}

		seed := *history[len(history)-1]
		detection := Detect(seed, history, cfg)
		if detection.Confidence < 0.0 || detection.Confidence > 1.0 {
			t.Errorf("history size %d: confidence %f out of [0,1]", size+1, detection.Confidence)
		}
	}
}
