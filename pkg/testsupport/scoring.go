package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ScoringResponse is one canned reply of a StubScoringServer.
type ScoringResponse struct {
	Status int
	Body   string
}

// Probability returns a 200 reply carrying p.
func Probability(p float64) ScoringResponse {
	body, _ := json.Marshal(map[string]float64{"default_probability": p})
	return ScoringResponse{Status: http.StatusOK, Body: string(body)}
}

// StubScoringServer replays canned responses in order and records every
// payload it receives. Once the queue is exhausted it answers 503.
type StubScoringServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses []ScoringResponse
	payloads  []map[string]float64
}

// NewStubScoringServer starts a server that is closed when the test ends.
func NewStubScoringServer(t *testing.T, responses ...ScoringResponse) *StubScoringServer {
	t.Helper()

	stub := &StubScoringServer{responses: responses}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.Close)
	return stub
}

// Endpoint returns the scoring URL.
func (s *StubScoringServer) Endpoint() string {
	return s.URL + "/score"
}

// Payloads returns the decoded request bodies received so far.
func (s *StubScoringServer) Payloads() []map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]float64, len(s.payloads))
	copy(out, s.payloads)
	return out
}

// Calls reports how many requests were received.
func (s *StubScoringServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *StubScoringServer) handle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]float64
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &payload)

	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	resp := ScoringResponse{Status: http.StatusServiceUnavailable, Body: `{"detail":"no canned response"}`}
	if len(s.responses) > 0 {
		resp = s.responses[0]
		s.responses = s.responses[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}
