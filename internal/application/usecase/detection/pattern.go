// Package detection contains the recurring-expense pattern detector.
package detection

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/billtrack/recurring-engine/internal/domain/entity"
	"github.com/billtrack/recurring-engine/internal/domain/valueobject"
)

// Detection is the pure classification result for one transaction history.
type Detection struct {
	MerchantPattern   string
	RecurrenceType    valueobject.RecurrenceType
	Confidence        float64
	AmountConsistent  bool
	TimingConsistent  bool
	AnchorDueDate     time.Time
	NextPredictedDate *time.Time
	DetectionCount    int
}

// Detect classifies a seed transaction against its merchant-matched history.
// The history must be ordered by occurrence date ascending and normally
// includes the seed itself. Detection never fails; thin histories degrade to
// a low-confidence one-time classification instead.
func Detect(seed entity.TransactionRecord, history []*entity.TransactionRecord, cfg valueobject.DetectionConfig) Detection {
	pattern := DeriveMerchantPattern(seed.Description)

	anchor := seed.OccurredAt()
	if len(history) > 0 {
		anchor = history[len(history)-1].OccurredAt()
	}

	if len(history) < cfg.MinHistory {
		return Detection{
			MerchantPattern: pattern,
			RecurrenceType:  valueobject.RecurrenceOneTime,
			Confidence:      cfg.InsufficientEvidence,
			AnchorDueDate:   anchor,
			DetectionCount:  len(history),
		}
	}

	gaps := dayGaps(history)
	center := median(gaps)
	spread := maxDeviation(gaps, center)

	recurrence := valueobject.RecurrenceIrregular
	if center > 0 && spread/center <= cfg.MaxGapSpreadRatio {
		recurrence = cfg.Classify(center)
	}

	amountConsistent := amountsConsistent(history, cfg.AmountTolerance)
	timingConsistent := recurrence.IsCyclical() &&
		spread <= cfg.TimingDispersionRatio*recurrence.IntervalDays()

	confidence := cfg.BaseConfidence
	if amountConsistent {
		confidence += cfg.ConsistencyWeight
	} else {
		confidence += cfg.PartialWeight
	}
	if timingConsistent {
		confidence += cfg.ConsistencyWeight
	} else if recurrence.IsCyclical() {
		confidence += cfg.PartialWeight
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	var next *time.Time
	if recurrence.IsCyclical() {
		// StepFromAnchor cannot fail for a cyclical type.
		predicted, _ := valueobject.StepFromAnchor(anchor, recurrence, 1)
		next = &predicted
	}

	return Detection{
		MerchantPattern:   pattern,
		RecurrenceType:    recurrence,
		Confidence:        confidence,
		AmountConsistent:  amountConsistent,
		TimingConsistent:  timingConsistent,
		AnchorDueDate:     anchor,
		NextPredictedDate: next,
		DetectionCount:    len(history),
	}
}

// DeriveMerchantPattern reduces a raw bank-feed description to a prefix
// usable for case-insensitive prefix matching, by stripping trailing
// numeric/reference tokens ("NETFLIX 123456" -> "NETFLIX"). At least the
// first token is always kept.
func DeriveMerchantPattern(description string) string {
	tokens := strings.Fields(description)
	if len(tokens) == 0 {
		return strings.TrimSpace(description)
	}

	end := len(tokens)
	for end > 1 && isReferenceToken(tokens[end-1]) {
		end--
	}
	return strings.Join(tokens[:end], " ")
}

// isReferenceToken reports whether a token looks like a transaction
// reference rather than part of the merchant name: no letters at all, or at
// least half of its characters are digits.
func isReferenceToken(token string) bool {
	token = strings.TrimLeft(token, "#*-")
	if token == "" {
		return true
	}

	digits, letters := 0, 0
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if letters == 0 {
		return true
	}
	return digits*2 >= len(token)
}

// dayGaps returns the consecutive day-gaps between ordered history entries.
func dayGaps(history []*entity.TransactionRecord) []float64 {
	gaps := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		delta := history[i].OccurredAt().Sub(history[i-1].OccurredAt())
		gaps = append(gaps, delta.Hours()/24)
	}
	return gaps
}

// median returns the middle value of the gap distribution; it is robust to a
// single skipped or doubled cycle in a way the mean is not.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func maxDeviation(values []float64, center float64) float64 {
	max := 0.0
	for _, v := range values {
		dev := v - center
		if dev < 0 {
			dev = -dev
		}
		if dev > max {
			max = dev
		}
	}
	return max
}

// amountsConsistent checks whether the maximum relative deviation of the
// history's amounts from their mean stays within tolerance.
func amountsConsistent(history []*entity.TransactionRecord, tolerance decimal.Decimal) bool {
	if len(history) == 0 {
		return false
	}

	sum := decimal.Zero
	for _, tx := range history {
		sum = sum.Add(decimal.NewFromInt(tx.AmountCents).Abs())
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(history))))
	if mean.IsZero() {
		return false
	}

	for _, tx := range history {
		deviation := decimal.NewFromInt(tx.AmountCents).Abs().Sub(mean).Abs().Div(mean)
		if deviation.GreaterThan(tolerance) {
			return false
		}
	}
	return true
}
