package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{"short text", "bonjour", 10, 2, []string{"bonjour"}},
		{"word boundary", "aaaa bbbb cccc", 7, 0, []string{"aaaa ", "bbbb ", "cccc"}},
		{"hard cut", "abcdefghij", 4, 0, []string{"abcd", "efgh", "ij"}},
		{"overlap", "abcdefghij", 4, 1, []string{"abcd", "defg", "ghij"}},
		{"multibyte", "ééééé", 2, 0, []string{"éé", "éé", "é"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, tt.chunkSize, tt.overlap))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "court", Truncate("court", 10))
	assert.Equal(t, "un deux…", Truncate("un deux trois quatre", 10))
	assert.Equal(t, "premier paragraphe\n\n…", Truncate("premier paragraphe\n\nsecond paragraphe", 25))

	long := strings.Repeat("mot ", 1000)
	got := Truncate(long, 2200)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 2201)
	assert.True(t, strings.HasSuffix(got, "…"))
}
