package synth

import (
	"context"
	"sync"
	"time"
)

// Mock is a scriptable Gateway for tests and for running the application
// without a piper install. Each call records its Request; the response is
// controlled through Artifact, Err, Delay and the optional Gate channel.
type Mock struct {
	mu       sync.Mutex
	requests []Request

	// Artifact is the path returned on success.
	Artifact string
	// Err, when set, fails every call.
	Err error
	// Delay is slept before responding, simulating engine latency.
	Delay time.Duration
	// Gate, when non-nil, blocks each call until a value is received or the
	// context is done. Tests use it to hold a synthesis in flight.
	Gate chan struct{}
}

// NewMock returns a Mock that succeeds immediately with artifact path.
func NewMock(artifact string) *Mock {
	return &Mock{Artifact: artifact}
}

// Synthesize implements Gateway.
func (m *Mock) Synthesize(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	gate := m.Gate
	delay := m.Delay
	failure := m.Err
	artifact := m.Artifact
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if failure != nil {
		return "", failure
	}
	return artifact, nil
}

// Requests returns a copy of every Request seen so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns how many Synthesize calls have been made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
