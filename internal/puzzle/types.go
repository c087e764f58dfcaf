// internal/puzzle/types.go
//
// Core type definitions for the puzzle engine.
// Defines:
//   - Hint:  immutable metadata for one puzzle word.
//   - Cell:  one grid position (letter, empty, or padding).
//   - Word:  a padded row of cells.
//   - State: a read-only snapshot of the whole puzzle.

package puzzle

import "strings"

// Hint describes one word of the puzzle. It is loaded once per session and never mutated.
type Hint struct {
	ID                     string `json:"id" yaml:"id"`
	WordIndex              int    `json:"word_index" yaml:"word_index"`
	LetterCount            int    `json:"letter_count" yaml:"letter_count"`
	HighlightedLetterIndex int    `json:"highlighted_letter_index" yaml:"highlighted_letter_index"`
	ImageURL               string `json:"image_url" yaml:"image_url"`
}

// Unlocked reports whether the hint image is available to the player.
func (h Hint) Unlocked() bool { return strings.TrimSpace(h.ImageURL) != "" }

// Cell is a single grid position.
//   - Padding cells only exist to align the highlighted column; they never hold a letter.
//   - A real cell is either Filled (Letter is an uppercase A–Z) or empty.
type Cell struct {
	Letter  byte
	Filled  bool
	Padding bool
}

// Word is one padded row of the grid.
type Word struct {
	Index       int
	LeftPad     int
	RightPad    int
	LetterCount int
	Cells       []Cell // len == PaddedLength()
}

// PaddedLength is LeftPad + LetterCount + RightPad.
func (w Word) PaddedLength() int { return w.LeftPad + w.LetterCount + w.RightPad }

// Filled reports whether every real cell holds a letter.
func (w Word) Filled() bool {
	for _, c := range w.Cells {
		if !c.Padding && !c.Filled {
			return false
		}
	}
	return true
}

// Guess returns the player's letters for the real cells, '?' for empty ones.
func (w Word) Guess() string {
	var b strings.Builder
	for _, c := range w.Cells[w.LeftPad : w.LeftPad+w.LetterCount] {
		if c.Filled {
			b.WriteByte(c.Letter)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// State is a snapshot returned by every Engine operation.
// Callers own the copy; mutating it does not affect the engine.
type State struct {
	Words          []Word
	Hints          []Hint
	AlignedColumn  int    // padded column holding every word's highlighted letter
	TargetSentence string // empty while the puzzle is incomplete
}

// Complete reports whether the target sentence is defined.
func (s State) Complete() bool { return s.TargetSentence != "" }
