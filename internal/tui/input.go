package tui

import (
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in a form field.
const maxInputLen = 200

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// appendRunes adds pasted or typed runes one at a time, honouring maxInputLen.
// Newlines and tabs from a paste are dropped.
func appendRunes(text string, runes []rune) string {
	for _, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		text = editRune(text, string(r))
	}
	return text
}

// mask hides a secret, keeping only its length visible.
func mask(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}
