package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text untouched", "Great coffee here", "Great coffee here"},
		{"strips urls", "Check https://example.com/cafe now", "Check now"},
		{"strips ftp urls", "get it at ftp://files.example.com/a.zip today", "get it at today"},
		{"strips special characters", "Wow!!! #coffee @alice :)", "Wow coffee alice"},
		{"collapses whitespace", "too   many\t spaces\nhere", "too many spaces here"},
		{"unicode removed", "chai ☕ time", "chai time"},
		{"only noise", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Check https://example.com/cafe #now!",
		"plain",
		"  spaced   out  ",
	}
	for _, s := range inputs {
		once := Clean(s)
		assert.Equal(t, once, Clean(once))
	}
}
