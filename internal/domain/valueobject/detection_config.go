package valueobject

import "github.com/shopspring/decimal"

// GapBand maps a range of observed day-gaps onto a recurrence type.
type GapBand struct {
	Type    RecurrenceType
	MinDays float64
	MaxDays float64
}

// DetectionConfig contains the tunable thresholds for recurring-expense
// pattern detection. The values live here, not in conditional branches, so
// tests can exercise each band independently.
type DetectionConfig struct {
	// Bands classify the center of the gap distribution. Checked in order.
	Bands []GapBand

	// Amount consistency: max relative deviation of amounts from their mean.
	AmountTolerance decimal.Decimal // 0.15 = 15%

	// Timing consistency: max gap deviation from the distribution center,
	// as a fraction of the classified interval.
	TimingDispersionRatio float64 // 0.2 = 20% of the interval

	// Gap distributions more dispersed than this fraction of their own center
	// are classified irregular before any band matching.
	MaxGapSpreadRatio float64

	// Confidence scoring weights.
	BaseConfidence       float64 // granted to every detection
	ConsistencyWeight    float64 // granted per fully-consistent dimension
	PartialWeight        float64 // granted per partially-consistent dimension
	InsufficientEvidence float64 // flat confidence when history is too short

	// MinHistory is the minimum number of matching transactions required to
	// classify anything other than one-time.
	MinHistory int

	// Definitions scoring below this are flagged low-confidence for the caller.
	LowConfidenceThreshold float64
}

// DefaultDetectionConfig returns the default detection thresholds.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		Bands: []GapBand{
			{Type: RecurrenceWeekly, MinDays: 5.5, MaxDays: 9.5},
			{Type: RecurrenceFortnightly, MinDays: 12, MaxDays: 16.5},
			{Type: RecurrenceMonthly, MinDays: 26, MaxDays: 33},
			{Type: RecurrenceQuarterly, MinDays: 80, MaxDays: 100},
			{Type: RecurrenceYearly, MinDays: 350, MaxDays: 380},
		},
		AmountTolerance:        decimal.NewFromFloat(0.15),
		TimingDispersionRatio:  0.2,
		MaxGapSpreadRatio:      0.5,
		BaseConfidence:         0.2,
		ConsistencyWeight:      0.4,
		PartialWeight:          0.2,
		InsufficientEvidence:   0.2,
		MinHistory:             2,
		LowConfidenceThreshold: 0.5,
	}
}

// Classify maps the center of a gap distribution onto a recurrence type.
// Returns irregular when no band contains the center.
func (c DetectionConfig) Classify(centerDays float64) RecurrenceType {
	for _, band := range c.Bands {
		if centerDays >= band.MinDays && centerDays <= band.MaxDays {
			return band.Type
		}
	}
	return RecurrenceIrregular
}
