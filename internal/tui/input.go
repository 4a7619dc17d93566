package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
// Reply bodies are capped at 10000 by the backend.
const maxInputLen = 10000

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
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// editKey applies a key event to text. Pasted text arrives as one
// multi-rune event and is appended up to maxInputLen.
func editKey(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		return editRune(text, "backspace")
	case tea.KeySpace:
		return editRune(text, " ")
	case tea.KeyRunes:
		if msg.Alt {
			return text
		}
		room := maxInputLen - utf8.RuneCountInString(text)
		runes := msg.Runes
		if room <= 0 {
			return text
		}
		if len(runes) > room {
			runes = runes[:room]
		}
		return text + string(runes)
	}
	return text
}

// maskRunes hides a secret behind one bullet per rune.
func maskRunes(s string) string {
	return strings.Repeat("•", utf8.RuneCountInString(s))
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// cycle moves through choices by delta, starting from current.
func cycle(choices []string, current string, delta int) string {
	if len(choices) == 0 {
		return current
	}
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(choices)) % len(choices)
	return choices[idx]
}
