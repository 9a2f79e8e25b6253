// Package queue holds the ordered reading queue and the cursor that marks
// the segment currently being spoken.
package queue

import (
	"strings"
	"sync"
)

// Store is the reading queue: an ordered sequence of text segments plus a
// cursor clamped to the valid index range. Segments are immutable once
// stored; the queue is only ever replaced wholesale or appended to.
// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	segments []string
	cursor   int
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// ReplaceAll replaces the whole queue with the cleaned form of raw and
// resets the cursor to zero. Entries are trimmed and whitespace-only
// entries are dropped; if nothing survives cleaning the queue is empty.
func (s *Store) ReplaceAll(raw []string) {
	cleaned := clean(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = cleaned
	s.cursor = 0
}

// Append concatenates the cleaned form of raw to the queue. The cursor is
// not touched.
func (s *Store) Append(raw []string) {
	cleaned := clean(raw)
	if len(cleaned) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = append(s.segments, cleaned...)
}

// At returns the segment at index i, or false when i is out of range.
func (s *Store) At(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.segments) {
		return "", false
	}
	return s.segments[i], true
}

// Len returns the number of segments in the queue.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.segments)
}

// Cursor returns the current cursor position.
func (s *Store) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// SetCursor moves the cursor to i, clamped to [0, Len()-1], and returns
// the position actually stored. On an empty queue the cursor stays at zero.
func (s *Store) SetCursor(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = clampIndex(i, len(s.segments))
	return s.cursor
}

// Advance moves the cursor one segment forward. It reports false, leaving
// the cursor in place, when the cursor is already on the last segment or
// the queue is empty.
func (s *Store) Advance() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor+1 >= len(s.segments) {
		return s.cursor, false
	}
	s.cursor++
	return s.cursor, true
}

// Segments returns a copy of the stored segments.
func (s *Store) Segments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.segments))
	copy(out, s.segments)
	return out
}

func clean(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func clampIndex(i, length int) int {
	if length == 0 || i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
