// Package history accumulates the default probabilities returned during one
// dashboard session and exports them.
package history

import "sync"

// History is an append-only list of probabilities in arrival order. It is safe
// for concurrent use.
type History struct {
	mu     sync.RWMutex
	values []float64
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Record appends one successful prediction.
func (h *History) Record(probability float64) {
	h.mu.Lock()
	h.values = append(h.values, probability)
	h.mu.Unlock()
}

// Values returns a copy of the recorded probabilities.
func (h *History) Values() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

// Len reports how many predictions were recorded.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.values)
}

// Last returns the most recent prediction.
func (h *History) Last() (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.values) == 0 {
		return 0, false
	}
	return h.values[len(h.values)-1], true
}

// Clear drops all recorded predictions.
func (h *History) Clear() {
	h.mu.Lock()
	h.values = nil
	h.mu.Unlock()
}
