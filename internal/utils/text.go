package utils

import "strings"

// Snippet trims text and shortens it to at most maxLen runes, ending with
// an ellipsis when cut.
func Snippet(text string, maxLen int) string {
	t := strings.TrimSpace(text)
	if t == "" || maxLen <= 0 {
		return ""
	}
	runes := []rune(t)
	if len(runes) <= maxLen {
		return t
	}
	return string(runes[:maxLen-1]) + "…"
}

// OneLine collapses all whitespace runs, including newlines, to single spaces
func OneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
