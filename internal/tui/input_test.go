package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "3", "3"},
		{"append digit", "37.77", "4", "37.774"},
		{"append minus", "", "-", "-"},
		{"append dot", "37", ".", "37."},
		{"append letter", "AIza", "S", "AIzaS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"backspace on single char", "a", ""},
		{"backspace on number", "-122.4194", "-122.419"},
		{"backspace on empty does nothing", "", ""},
		{"backspace removes whole rune", "45°", "45"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, "backspace")
			if got != tc.want {
				t.Errorf("editRune(%q, 'backspace') = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditRuneIgnoresNonPrintableKeys(t *testing.T) {
	nonPrintable := []string{"enter", "esc", "up", "down", "ctrl+c", "ctrl+s", "tab", "shift+tab", "f1"}

	original := "16"
	for _, key := range nonPrintable {
		t.Run(key, func(t *testing.T) {
			got := editRune(original, key)
			if got != original {
				t.Errorf("editRune(%q, %q) = %q, want unchanged %q", original, key, got, original)
			}
		})
	}
}

func TestEditRuneMaxLen(t *testing.T) {
	full := strings.Repeat("k", maxInputLen)
	if got := editRune(full, "x"); got != full {
		t.Errorf("editRune at max length grew to %d runes", len([]rune(got)))
	}
}

func TestAppendRunes(t *testing.T) {
	got := appendRunes("AIza", []rune("Sy-key\n\t"))
	if got != "AIzaSy-key" {
		t.Errorf("appendRunes = %q, want %q", got, "AIzaSy-key")
	}
}

func TestMask(t *testing.T) {
	if got := mask("secret"); got != "••••••" {
		t.Errorf("mask(secret) = %q", got)
	}
	if got := mask(""); got != "" {
		t.Errorf("mask(empty) = %q, want empty", got)
	}
}
