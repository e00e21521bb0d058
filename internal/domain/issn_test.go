package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISSN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical form", "2049-3630", "2049-3630"},
		{"missing hyphen", "20493630", "2049-3630"},
		{"lowercase check digit", "2434-561x", "2434-561X"},
		{"surrounding whitespace", "  2049-3630  ", "2049-3630"},
		{"too short", "2049-363", ""},
		{"too long", "2049-36301", ""},
		{"letters in body", "20AB-3630", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeISSN(tt.input))
		})
	}
}

func TestValidISSN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid with digit check", "2049-3630", true},
		{"valid with X check", "2434-561X", true},
		{"valid lowercase x", "2434-561x", true},
		{"wrong check digit", "2049-3631", false},
		{"X where digit expected", "2049-363X", false},
		{"garbage", "not-an-issn", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidISSN(tt.input))
		})
	}
}

func TestLooksLikeISSN(t *testing.T) {
	assert.True(t, LooksLikeISSN("2049-3630"))
	assert.True(t, LooksLikeISSN("1234-567X"))
	assert.True(t, LooksLikeISSN(" 2049-3630 "))
	// Shape check only, checksum not verified.
	assert.True(t, LooksLikeISSN("1234-5678"))
	assert.False(t, LooksLikeISSN("10.1000/xyz"))
	assert.False(t, LooksLikeISSN("20493630"))
	assert.False(t, LooksLikeISSN("prefix 2049-3630"))
	assert.False(t, LooksLikeISSN(""))
}

func TestExtractISSNs(t *testing.T) {
	t.Run("bare occurrence", func(t *testing.T) {
		got := ExtractISSNs("published in a journal, ISSN 2049-3630, quarterly")
		assert.Equal(t, []string{"2049-3630"}, got)
	})

	t.Run("labeled occurrence", func(t *testing.T) {
		got := ExtractISSNs("ISSN: 2434-561x")
		assert.Equal(t, []string{"2434-561X"}, got)
	})

	t.Run("checksum filter drops invalid", func(t *testing.T) {
		got := ExtractISSNs("candidates 2049-3631 and 2049-3630")
		assert.Equal(t, []string{"2049-3630"}, got)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		got := ExtractISSNs("2049-3630 appears twice: 2049-3630")
		assert.Equal(t, []string{"2049-3630"}, got)
	})

	t.Run("scan limit", func(t *testing.T) {
		padding := make([]byte, issnScanLimit)
		for i := range padding {
			padding[i] = 'a'
		}
		got := ExtractISSNs(string(padding) + " 2049-3630")
		assert.Empty(t, got)
	})

	t.Run("no issn", func(t *testing.T) {
		assert.Empty(t, ExtractISSNs("nothing to see here"))
	})
}
