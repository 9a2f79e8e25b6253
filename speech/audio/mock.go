package audio

import "sync"

// Mock is a Gateway for tests. Playback never touches a device; the test
// drives completion by calling Finish or Fail.
type Mock struct {
	mu sync.Mutex

	played  []string
	done    chan Event
	playing bool
	paused  bool
	volume  float64

	pauseCount  int
	resumeCount int
	stopCount   int

	// PlayErr, when set, fails the next Play call.
	PlayErr error
}

// NewMockPlayer returns an idle Mock.
func NewMockPlayer() *Mock {
	return &Mock{volume: 1.0}
}

// Play implements Gateway.
func (m *Mock) Play(path string) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayErr != nil {
		err := m.PlayErr
		m.PlayErr = nil
		return nil, err
	}
	if m.done != nil {
		m.done <- Event{Outcome: Stopped}
	}
	m.played = append(m.played, path)
	m.done = make(chan Event, 1)
	m.playing = true
	m.paused = false
	return m.done, nil
}

// Pause implements Gateway.
func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.playing || m.paused {
		return ErrNotPlaying
	}
	m.paused = true
	m.pauseCount++
	return nil
}

// Resume implements Gateway.
func (m *Mock) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.paused {
		return ErrNotPaused
	}
	m.paused = false
	m.resumeCount++
	return nil
}

// Stop implements Gateway.
func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		m.done <- Event{Outcome: Stopped}
		m.done = nil
	}
	m.playing = false
	m.paused = false
	m.stopCount++
	return nil
}

// SetVolume implements Gateway.
func (m *Mock) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
}

// IsPlaying implements Gateway.
func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing && !m.paused
}

// Finish delivers a Finished event for the current playback.
func (m *Mock) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		return
	}
	m.done <- Event{Outcome: Finished}
	m.done = nil
	m.playing = false
	m.paused = false
}

// Fail delivers a Failed event carrying err for the current playback.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil {
		return
	}
	m.done <- Event{Outcome: Failed, Err: err}
	m.done = nil
	m.playing = false
	m.paused = false
}

// Played returns the artifact paths passed to Play, in order.
func (m *Mock) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.played))
	copy(out, m.played)
	return out
}

// Volume returns the last value passed to SetVolume.
func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Counts returns how many times Pause, Resume and Stop were called.
func (m *Mock) Counts() (pauses, resumes, stops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCount, m.resumeCount, m.stopCount
}
