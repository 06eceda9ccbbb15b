package history

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes the session's predictions at a glance.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Last   float64 `json:"last"`
}

// Summarize computes the summary. An empty history yields a zero Summary.
func (h *History) Summarize() (Summary, error) {
	return SummarizeValues(h.Values())
}

// SummarizeValues computes the summary for values.
func SummarizeValues(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, nil
	}
	data := stats.Float64Data(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("history: mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("history: median: %w", err)
	}
	lo, err := stats.Min(data)
	if err != nil {
		return Summary{}, fmt.Errorf("history: min: %w", err)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Summary{}, fmt.Errorf("history: max: %w", err)
	}

	return Summary{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		Min:    lo,
		Max:    hi,
		Last:   values[len(values)-1],
	}, nil
}
