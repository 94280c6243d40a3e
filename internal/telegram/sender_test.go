package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		chunks := splitMessage("hello", 10)
		assert.Equal(t, []string{"hello"}, chunks)
	})

	t.Run("splits at the limit", func(t *testing.T) {
		chunks := splitMessage(strings.Repeat("a", 25), 10)
		require.Len(t, chunks, 3)
		assert.Equal(t, 10, len([]rune(chunks[0])))
		assert.Equal(t, 10, len([]rune(chunks[1])))
		assert.Equal(t, 5, len([]rune(chunks[2])))
	})

	t.Run("prefers line boundaries", func(t *testing.T) {
		text := "first line\nsecond"
		chunks := splitMessage(text, 12)
		assert.Equal(t, []string{"first line\n", "second"}, chunks)
	})

	t.Run("no chunk exceeds the limit and content survives", func(t *testing.T) {
		text := strings.Repeat("line of text\n", 100)
		chunks := splitMessage(text, 50)

		for _, chunk := range chunks {
			assert.LessOrEqual(t, len([]rune(chunk)), 50)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		text := strings.Repeat("ё", 12)
		chunks := splitMessage(text, 10)
		require.Len(t, chunks, 2)
		assert.Equal(t, 10, len([]rune(chunks[0])))
	})
}
