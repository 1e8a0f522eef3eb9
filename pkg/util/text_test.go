package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "one two three", TruncateWords("one two three", 5))
	assert.Equal(t, "one two...", TruncateWords("one two three four", 2))
	assert.Equal(t, "a b", TruncateWords("  a   b  ", 10))
	assert.Equal(t, "whole text", TruncateWords("whole text", 0))
}

func TestCompactWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CompactWhitespace(" a\n b\t\tc "))
	assert.Equal(t, "", CompactWhitespace("   "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "x", FirstNonEmpty("", "x", "y"))
	assert.Equal(t, "", FirstNonEmpty("", ""))
}
