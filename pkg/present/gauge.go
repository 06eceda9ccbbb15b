package present

import "math"

// Bucket is the qualitative risk band of a probability.
type Bucket string

const (
	BucketLow      Bucket = "low"
	BucketModerate Bucket = "moderate"
	BucketElevated Bucket = "elevated"
	BucketHigh     Bucket = "high"
)

// Bucket thresholds; each is the inclusive lower edge of the next band.
const (
	ModerateThreshold = 0.2
	ElevatedThreshold = 0.5
	HighThreshold     = 0.7
)

func (b Bucket) token() string {
	switch b {
	case BucketModerate:
		return TokenRiskModerate
	case BucketElevated:
		return TokenRiskElevated
	case BucketHigh:
		return TokenRiskHigh
	default:
		return TokenRiskLow
	}
}

// Label is the human-readable band name.
func (b Bucket) Label() string {
	switch b {
	case BucketModerate:
		return "Moderate risk"
	case BucketElevated:
		return "Elevated risk"
	case BucketHigh:
		return "High risk"
	default:
		return "Low risk"
	}
}

// Gauge is the display contract for one prediction.
type Gauge struct {
	Probability float64 `json:"probability"`
	Percent     int     `json:"percent"`
	Bucket      Bucket  `json:"bucket"`
	Color       string  `json:"color"`
}

// BucketFor classifies a probability. Values outside [0,1] fall into the
// nearest band.
func BucketFor(p float64) Bucket {
	switch {
	case p >= HighThreshold:
		return BucketHigh
	case p >= ElevatedThreshold:
		return BucketElevated
	case p >= ModerateThreshold:
		return BucketModerate
	default:
		return BucketLow
	}
}

// Percent rounds a probability to a whole percentage, half away from zero.
func Percent(p float64) int {
	return int(math.Round(p * 100))
}

// NewGauge builds the gauge contract using the default palette.
func NewGauge(p float64) Gauge {
	return DefaultPalette().Gauge(p)
}

// Gauge builds the gauge contract with colours from this palette.
func (p Palette) Gauge(probability float64) Gauge {
	bucket := BucketFor(probability)
	return Gauge{
		Probability: probability,
		Percent:     Percent(probability),
		Bucket:      bucket,
		Color:       p.BucketColor(bucket),
	}
}

// Fill returns the gauge's filled fraction clamped to [0,1].
func (g Gauge) Fill() float64 {
	return math.Max(0, math.Min(1, g.Probability))
}
