package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinedenker/denker/internal/puzzle"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, err := c.Get("think")
	require.NoError(t, err)

	e, err := p.NewEngine()
	require.NoError(t, err)
	for wi, w := range []string{"PATH", "CHAIR", "BRIDGE", "ANCHOR", "KEY"} {
		for li := range w {
			_, err := e.SetLetter(wi, li, string(w[li]))
			require.NoError(t, err)
		}
	}
	assert.Equal(t, "THINK", e.State().TargetSentence)

	m, err := c.Get("mystery")
	require.NoError(t, err)
	assert.Len(t, m.Hints(), 7)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
puzzles:
  - id: tiny
    words:
      - id: a
        word_index: 0
        letter_count: 3
        highlighted_letter_index: 1
        answer: cat
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	p := c.Pick(5)
	assert.Equal(t, "tiny", p.ID)
	assert.Equal(t, "CAT", p.Answer(0))
	assert.Equal(t, []puzzle.Hint{{ID: "a", WordIndex: 0, LetterCount: 3, HighlightedLetterIndex: 1}}, p.Hints())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", `puzzles: []`},
		{"no id", `
puzzles:
  - words:
      - {id: a, word_index: 0, letter_count: 3, highlighted_letter_index: 0, answer: CAT}
`},
		{"duplicate id", `
puzzles:
  - id: p
    words:
      - {id: a, word_index: 0, letter_count: 3, highlighted_letter_index: 0, answer: CAT}
  - id: p
    words:
      - {id: a, word_index: 0, letter_count: 3, highlighted_letter_index: 0, answer: DOG}
`},
		{"letter count mismatch", `
puzzles:
  - id: p
    words:
      - {id: a, word_index: 0, letter_count: 10, highlighted_letter_index: 2, answer: ART}
`},
		{"highlight out of range", `
puzzles:
  - id: p
    words:
      - {id: a, word_index: 0, letter_count: 3, highlighted_letter_index: 4, answer: CAT}
`},
		{"no words", `
puzzles:
  - id: p
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.True(t, errors.Is(err, puzzle.ErrConfiguration), "got %v", err)
		})
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("puzzles: [:"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, puzzle.ErrConfiguration))
}

func TestGet_Unknown(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	_, err = c.Get("missing")
	assert.True(t, errors.Is(err, ErrUnknownPuzzle))
}

func TestPick_Wraps(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c.Pick(0), c.Pick(2))
	assert.Equal(t, c.Pick(1), c.Pick(-1))
}
