// Package dict provides the pronunciation dictionary: user-maintained
// word-to-phoneme substitutions applied to segment text before synthesis.
package dict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Entry maps one word to the phoneme string spoken in its place.
type Entry struct {
	Word     string `json:"word"`
	Phonemes string `json:"phonemes"`
}

type dictionaryFile struct {
	Entries []Entry `json:"entries"`
}

// Dictionary is a JSON-persisted pronunciation dictionary. Lookups are
// case-insensitive on the trimmed word. Safe for concurrent use.
type Dictionary struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

// Load reads the dictionary at path. A missing file yields an empty
// dictionary bound to that path; a malformed file is an error.
func Load(path string) (*Dictionary, error) {
	d := &Dictionary{path: path, entries: make(map[string]Entry)}

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	if strings.TrimSpace(string(contents)) == "" {
		return d, nil
	}

	var file dictionaryFile
	if err := json.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("parsing dictionary %s: %w", path, err)
	}
	for _, entry := range file.Entries {
		d.entries[canonicalKey(entry.Word)] = entry
	}
	return d, nil
}

// Save writes the dictionary back to its path, entries sorted by word.
func (d *Dictionary) Save() error {
	d.mu.RLock()
	entries := make([]Entry, 0, len(d.entries))
	for _, entry := range d.entries {
		entries = append(entries, entry)
	}
	path := d.path
	d.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Word) < strings.ToLower(entries[j].Word)
	})

	payload, err := json.MarshalIndent(dictionaryFile{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising dictionary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dictionary directory: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing dictionary %s: %w", path, err)
	}
	return nil
}

// Insert adds or replaces the entry for word.
func (d *Dictionary) Insert(word, phonemes string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[canonicalKey(word)] = Entry{Word: word, Phonemes: phonemes}
}

// Remove deletes the entry for word, reporting whether it existed.
func (d *Dictionary) Remove(word string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := canonicalKey(word)
	_, ok := d.entries[key]
	delete(d.entries, key)
	return ok
}

// Phonemes returns the substitution for word, if present.
func (d *Dictionary) Phonemes(word string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[canonicalKey(word)]
	return entry.Phonemes, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Entries returns all entries sorted by word.
func (d *Dictionary) Entries() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := make([]Entry, 0, len(d.entries))
	for _, entry := range d.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Word) < strings.ToLower(entries[j].Word)
	})
	return entries
}

// TransformText replaces every dictionary word in text with its phonemes.
// Tokens are runs of letters, digits, apostrophes and hyphens; matching is
// case-insensitive and everything between tokens passes through untouched.
func (d *Dictionary) TransformText(text string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.entries) == 0 {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))
	var token strings.Builder

	flush := func() {
		if token.Len() == 0 {
			return
		}
		word := token.String()
		if entry, ok := d.entries[canonicalKey(word)]; ok {
			result.WriteString(entry.Phonemes)
		} else {
			result.WriteString(word)
		}
		token.Reset()
	}

	for _, ch := range text {
		if isTokenRune(ch) {
			token.WriteRune(ch)
			continue
		}
		flush()
		result.WriteRune(ch)
	}
	flush()
	return result.String()
}

func canonicalKey(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func isTokenRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '\'' || ch == '-'
}
