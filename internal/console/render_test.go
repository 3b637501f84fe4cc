package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/libroteca/librocli/internal/models"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"markup renders literally", "<b>x</b>", "<b>x</b>"},
		{"escape sequence stripped", "evil\x1b[31mred", "evil[31mred"},
		{"tabs and newlines flattened", "a\tb\nc", "a b c"},
		{"plain text untouched", "Cien años de soledad", "Cien años de soledad"},
		{"delete byte dropped", "a\x7fb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestRenderLibrosLiteralMarkup(t *testing.T) {
	var buf bytes.Buffer
	renderLibros(&buf, []models.Libro{
		{ID: 1, Titulo: "<b>x</b>", Autor: "a & b", Isbn: "123"},
	})
	out := buf.String()
	if !strings.Contains(out, "<b>x</b>") {
		t.Errorf("Expected literal markup in output, got %q", out)
	}
	if !strings.Contains(out, "a & b") {
		t.Errorf("Expected ampersand untouched, got %q", out)
	}
}

func TestRenderLibrosEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderLibros(&buf, nil)
	if !strings.Contains(buf.String(), "no results") {
		t.Errorf("Expected empty placeholder, got %q", buf.String())
	}
}
