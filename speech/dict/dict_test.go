package dict

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptyDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed file succeeded")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lexicon.json")
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d.Insert("gif", "JH IH1 F")
	d.Insert("SQL", "S Q L")
	if err := d.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if ph, ok := reloaded.Phonemes("gif"); !ok || ph != "JH IH1 F" {
		t.Errorf("Phonemes(gif) = %q, %v", ph, ok)
	}
	// Lookup is case-insensitive.
	if ph, ok := reloaded.Phonemes("sql"); !ok || ph != "S Q L" {
		t.Errorf("Phonemes(sql) = %q, %v", ph, ok)
	}
}

func TestTransformText(t *testing.T) {
	d, _ := Load(filepath.Join(t.TempDir(), "d.json"))
	d.Insert("gif", "JH IH1 F")
	d.Insert("Na", "N EY1")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "replaces matched tokens case-insensitively",
			in:   "Play that GIF, Na!",
			want: "Play that JH IH1 F, N EY1!",
		},
		{
			name: "unknown tokens pass through",
			in:   "nothing matches here",
			want: "nothing matches here",
		},
		{
			name: "hyphenated token is one word",
			in:   "gif-like",
			want: "gif-like",
		},
		{
			name: "punctuation preserved",
			in:   "gif. gif? gif",
			want: "JH IH1 F. JH IH1 F? JH IH1 F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.TransformText(tt.in); got != tt.want {
				t.Errorf("TransformText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformTextEmptyDictionaryIsIdentity(t *testing.T) {
	d, _ := Load(filepath.Join(t.TempDir(), "d.json"))
	in := "texto sin cambios"
	if got := d.TransformText(in); got != in {
		t.Errorf("TransformText(%q) = %q", in, got)
	}
}

func TestRemove(t *testing.T) {
	d, _ := Load(filepath.Join(t.TempDir(), "d.json"))
	d.Insert("gif", "JH IH1 F")
	if !d.Remove("GIF") {
		t.Error("Remove(GIF) = false, want true")
	}
	if d.Remove("gif") {
		t.Error("second Remove(gif) = true, want false")
	}
}

func TestEntriesSorted(t *testing.T) {
	d, _ := Load(filepath.Join(t.TempDir(), "d.json"))
	d.Insert("zeta", "Z")
	d.Insert("Alfa", "A")
	d.Insert("mu", "M")

	entries := d.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(Entries()) = %d, want 3", len(entries))
	}
	want := []string{"Alfa", "mu", "zeta"}
	for i, entry := range entries {
		if entry.Word != want[i] {
			t.Errorf("Entries()[%d].Word = %q, want %q", i, entry.Word, want[i])
		}
	}
}
