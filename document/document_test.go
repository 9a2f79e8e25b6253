package document

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExtractParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "blank line separates paragraphs",
			in:   "Primero.\n\nSegundo.",
			want: []string{"Primero.", "Segundo."},
		},
		{
			name: "inner lines joined with one space",
			in:   "Una linea\ny otra linea.\n\nAparte.",
			want: []string{"Una linea y otra linea.", "Aparte."},
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  con espacios  \n\n\t tab \n",
			want: []string{"con espacios", "tab"},
		},
		{
			name: "multiple blank lines collapse",
			in:   "Uno.\n\n\n\nDos.",
			want: []string{"Uno.", "Dos."},
		},
		{
			name: "windows line endings",
			in:   "Uno.\r\n\r\nDos.",
			want: []string{"Uno.", "Dos."},
		},
		{
			name: "whitespace only input",
			in:   "  \n\t\n  ",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractParagraphs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractParagraphs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "headings and paragraphs become segments",
			in:   "# Titulo\n\nPrimer parrafo.\n\nSegundo parrafo.",
			want: []string{"Titulo", "Primer parrafo.", "Segundo parrafo."},
		},
		{
			name: "list items become segments",
			in:   "- uno\n- dos\n- tres",
			want: []string{"uno", "dos", "tres"},
		},
		{
			name: "code blocks skipped",
			in:   "Antes.\n\n```go\nfunc main() {}\n```\n\nDespues.",
			want: []string{"Antes.", "Despues."},
		},
		{
			name: "inline markup stripped",
			in:   "Texto con *enfasis*, **negrita** y [un enlace](https://example.com).",
			want: []string{"Texto con enfasis, negrita y un enlace."},
		},
		{
			name: "inline code kept as text",
			in:   "Ejecuta `lector archivo.md` para empezar.",
			want: []string{"Ejecuta lector archivo.md para empezar."},
		},
		{
			name: "blockquote paragraphs spoken",
			in:   "> Cita famosa.\n\nComentario.",
			want: []string{"Cita famosa.", "Comentario."},
		},
		{
			name: "soft line breaks join with space",
			in:   "Primera linea\nsegunda linea.",
			want: []string{"Primera linea segunda linea."},
		},
		{
			name: "thematic break skipped",
			in:   "Arriba.\n\n---\n\nAbajo.",
			want: []string{"Arriba.", "Abajo."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMarkdown(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractMarkdown() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	md := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(md, []byte("# Hola\n\nMundo."), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(md)
	if err != nil {
		t.Fatalf("Load(md) error = %v", err)
	}
	if want := []string{"Hola", "Mundo."}; !reflect.DeepEqual(got, want) {
		t.Errorf("Load(md) = %#v, want %#v", got, want)
	}

	txt := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(txt, []byte("# Hola\n\nMundo."), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = Load(txt)
	if err != nil {
		t.Fatalf("Load(txt) error = %v", err)
	}
	// Plain text keeps the hash; only markdown interprets it.
	if want := []string{"# Hola", "Mundo."}; !reflect.DeepEqual(got, want) {
		t.Errorf("Load(txt) = %#v, want %#v", got, want)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no.txt")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}
