package queue

import (
	"reflect"
	"testing"
)

func TestReplaceAllCleansSegments(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "drops empty and trims",
			raw:  []string{"Hola", "", " Mundo "},
			want: []string{"Hola", "Mundo"},
		},
		{
			name: "whitespace only entries dropped",
			raw:  []string{"  ", "\t", "\n"},
			want: []string{},
		},
		{
			name: "nothing to clean",
			raw:  []string{"Uno", "Dos"},
			want: []string{"Uno", "Dos"},
		},
		{
			name: "nil input empties the queue",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ReplaceAll([]string{"previous"})
			s.SetCursor(0)
			s.ReplaceAll(tt.raw)

			if got := s.Segments(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segments() = %v, want %v", got, tt.want)
			}
			if s.Cursor() != 0 {
				t.Errorf("Cursor() = %d after ReplaceAll, want 0", s.Cursor())
			}
		})
	}
}

func TestAppendKeepsCursor(t *testing.T) {
	s := New()
	s.ReplaceAll([]string{"uno", "dos", "tres"})
	s.SetCursor(2)

	s.Append([]string{" cuatro ", "", "cinco"})

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor() = %d after Append, want 2", s.Cursor())
	}
	if seg, ok := s.At(3); !ok || seg != "cuatro" {
		t.Errorf("At(3) = %q, %v, want \"cuatro\", true", seg, ok)
	}
}

func TestAtBounds(t *testing.T) {
	s := New()
	s.ReplaceAll([]string{"solo"})

	if _, ok := s.At(-1); ok {
		t.Error("At(-1) reported ok")
	}
	if _, ok := s.At(1); ok {
		t.Error("At(1) reported ok on single-segment queue")
	}
	if seg, ok := s.At(0); !ok || seg != "solo" {
		t.Errorf("At(0) = %q, %v", seg, ok)
	}
}

func TestSetCursorClamps(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		set      int
		want     int
	}{
		{"negative clamps to zero", []string{"a", "b"}, -5, 0},
		{"past end clamps to last", []string{"a", "b"}, 99, 1},
		{"in range stays", []string{"a", "b", "c"}, 1, 1},
		{"empty queue pins to zero", nil, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ReplaceAll(tt.segments)
			if got := s.SetCursor(tt.set); got != tt.want {
				t.Errorf("SetCursor(%d) = %d, want %d", tt.set, got, tt.want)
			}
			if s.Cursor() != tt.want {
				t.Errorf("Cursor() = %d, want %d", s.Cursor(), tt.want)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	s := New()
	s.ReplaceAll([]string{"uno", "dos"})

	if idx, ok := s.Advance(); !ok || idx != 1 {
		t.Fatalf("Advance() = %d, %v, want 1, true", idx, ok)
	}
	if idx, ok := s.Advance(); ok || idx != 1 {
		t.Fatalf("Advance() at end = %d, %v, want 1, false", idx, ok)
	}

	empty := New()
	if _, ok := empty.Advance(); ok {
		t.Error("Advance() on empty queue reported ok")
	}
}
