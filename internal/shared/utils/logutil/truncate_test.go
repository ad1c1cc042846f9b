package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty", input: "", maxLen: 10, expected: ""},
		{name: "zero max", input: "abc", maxLen: 0, expected: "..."},
		{name: "shorter than max", input: "hello", maxLen: 10, expected: "hello"},
		{name: "token prefix", input: "eyJhbGciOiJSUzI1NiJ9.payload", maxLen: 8, expected: "eyJhbGci..."},
		{name: "multibyte", input: "日本語テキスト", maxLen: 3, expected: "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}
