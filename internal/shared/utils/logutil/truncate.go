package logutil

import "unicode/utf8"

// TruncateForLog keeps the first maxLen runes of s and marks the cut with "...".
// Tokens are logged through it so only a prefix ever reaches the log.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
