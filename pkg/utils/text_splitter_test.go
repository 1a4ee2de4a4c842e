package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	assert.Equal(t, []string{"short recipe"}, SplitText("short recipe", 100, 10))
	assert.Nil(t, SplitText("   ", 100, 10))
	assert.Nil(t, SplitText("", 100, 10))
}

func TestSplitTextBreaksOnWhitespace(t *testing.T) {
	text := strings.Repeat("garlic oil chili ", 20)

	chunks := SplitText(text, 50, 0)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 50)
		for _, w := range strings.Fields(c) {
			assert.Contains(t, []string{"garlic", "oil", "chili"}, w)
		}
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := "aaaa bbbb cccc dddd eeee ffff"

	chunks := SplitText(text, 10, 5)

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		assert.True(t, strings.HasPrefix(chunks[i], prev[len(prev)-1]),
			"chunk %q should start with the tail of %q", chunks[i], chunks[i-1])
	}
}

func TestSplitTextCountsRunes(t *testing.T) {
	text := strings.Repeat("é", 30)

	chunks := SplitText(text, 10, 0)

	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Equal(t, 10, len([]rune(c)))
	}
}

func TestSplitTextCoversEverything(t *testing.T) {
	text := strings.Repeat("word ", 200)

	chunks := SplitText(text, 64, 0)

	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}
