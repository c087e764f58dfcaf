package puzzle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressOf(t *testing.T) {
	e := newTwoWord(t)

	p := ProgressOf(e.State())
	assert.Equal(t, Progress{TotalWords: 2, TotalLetters: 10}, p)

	for i, l := range "GAME" {
		_, err := e.SetLetter(1, i, string(l))
		require.NoError(t, err)
	}
	_, err := e.SetLetter(0, 0, "P")
	require.NoError(t, err)

	p = ProgressOf(e.State())
	assert.Equal(t, 1, p.SolvedWords)
	assert.Equal(t, 5, p.FilledLetters)
	assert.Equal(t, 50, p.Percent)
	assert.False(t, p.Complete)

	p = ProgressOf(fillAll(t, e, "PUZZLE", "GAME"))
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.Complete)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{2*time.Minute + 3*time.Second, "2m 3s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 2m 3s"},
		{time.Hour, "1h 0m 0s"},
		{-time.Second, "0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.in))
	}
}

func TestShareText(t *testing.T) {
	e := newTwoWord(t)
	st, err := e.SetLetter(1, 3, "E")
	require.NoError(t, err)

	assert.Equal(t, "?E", HiddenMessage(st))
	assert.Equal(t, "Daily Word Puzzle - Day 3\n0/2 words filled\nHidden message: ?E\n🎯🧩🎮", ShareText(3, st))
}
