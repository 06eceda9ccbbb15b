package present

// Point is one entry of the history chart.
type Point struct {
	Index       int     `json:"index"`
	Percent     int     `json:"percent"`
	Probability float64 `json:"probability"`
}

// HistorySeries maps probabilities to 1-based points in percent.
func HistorySeries(values []float64) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{Index: i + 1, Percent: Percent(v), Probability: v}
	}
	return out
}
