// internal/puzzle/engine.go
//
// Core state engine for a single puzzle session.
// Responsibilities:
//   - Build the padded grid from a hint set and its hidden answers.
//   - Validate and apply letter guesses (single A–Z letters, bounds-checked).
//   - Derive completion and the target sentence from the aligned column.
//   - Reset the grid while keeping the layout.
//
// Notes:
//   - Letter indexes are relative to the unpadded word; the engine translates
//     them to grid columns using the word's LeftPad.
//   - Any letter is accepted, right or wrong. Answers only bound the indexes.
//   - All operations are serialized by a mutex and return a deep-copied State.
package puzzle

import (
	"fmt"
	"strings"
	"sync"
)

// AnswerFunc returns the hidden answer for a word index.
type AnswerFunc func(wordIndex int) string

// Engine owns the authoritative state of one puzzle.
type Engine struct {
	mu       sync.Mutex
	hints    []Hint   // insertion order
	words    []Word   // indexed by word index
	answers  []string // uppercase, indexed by word index
	column   int      // maxHighlight
	sentence string
}

// New validates the hint set and builds an engine with every cell empty.
//
// Validation rules (all ErrConfiguration):
//   - At least one hint.
//   - Word indexes are unique and cover 0..len(hints)-1.
//   - LetterCount >= 1 and HighlightedLetterIndex in [0, LetterCount).
//   - The answer for each word is LetterCount ASCII letters.
//
// Layout:
//   - LeftPad = maxHighlight - HighlightedLetterIndex, so every highlighted
//     letter lands on column maxHighlight.
//   - RightPad = maxTail - tail, where tail is the number of letters after the
//     highlighted one; every word ends up with the same padded length.
func New(hints []Hint, answers AnswerFunc) (*Engine, error) {
	if len(hints) == 0 {
		return nil, fmt.Errorf("%w: no hints", ErrConfiguration)
	}
	if answers == nil {
		return nil, fmt.Errorf("%w: no answer source", ErrConfiguration)
	}

	n := len(hints)
	seen := make([]bool, n)
	maxHighlight, maxTail := 0, 0
	for _, h := range hints {
		if h.WordIndex < 0 || h.WordIndex >= n {
			return nil, fmt.Errorf("%w: hint %q word index %d outside 0..%d", ErrConfiguration, h.ID, h.WordIndex, n-1)
		}
		if seen[h.WordIndex] {
			return nil, fmt.Errorf("%w: duplicate word index %d", ErrConfiguration, h.WordIndex)
		}
		seen[h.WordIndex] = true
		if h.LetterCount < 1 {
			return nil, fmt.Errorf("%w: hint %q letter count %d", ErrConfiguration, h.ID, h.LetterCount)
		}
		if h.HighlightedLetterIndex < 0 || h.HighlightedLetterIndex >= h.LetterCount {
			return nil, fmt.Errorf("%w: hint %q highlighted index %d outside [0,%d)",
				ErrConfiguration, h.ID, h.HighlightedLetterIndex, h.LetterCount)
		}
		maxHighlight = max(maxHighlight, h.HighlightedLetterIndex)
		maxTail = max(maxTail, h.LetterCount-1-h.HighlightedLetterIndex)
	}

	e := &Engine{
		hints:   append([]Hint(nil), hints...),
		words:   make([]Word, n),
		answers: make([]string, n),
		column:  maxHighlight,
	}
	for _, h := range hints {
		ans := strings.ToUpper(answers(h.WordIndex))
		if len(ans) != h.LetterCount || !isAlpha(ans) {
			return nil, fmt.Errorf("%w: answer for word %d does not match %d letters", ErrConfiguration, h.WordIndex, h.LetterCount)
		}
		w := Word{
			Index:       h.WordIndex,
			LeftPad:     maxHighlight - h.HighlightedLetterIndex,
			RightPad:    maxTail - (h.LetterCount - 1 - h.HighlightedLetterIndex),
			LetterCount: h.LetterCount,
		}
		w.Cells = make([]Cell, w.PaddedLength())
		for i := range w.Cells {
			if i < w.LeftPad || i >= w.LeftPad+w.LetterCount {
				w.Cells[i].Padding = true
			}
		}
		e.words[h.WordIndex] = w
		e.answers[h.WordIndex] = ans
	}
	return e, nil
}

// SetLetter writes an uppercased letter into a real cell.
// When the write fills the last empty cell, the target sentence is derived.
// Overwriting a filled cell is allowed; a complete puzzle re-derives its sentence.
func (e *Engine) SetLetter(wordIndex, letterIndex int, letter string) (State, error) {
	up, ok := normalizeLetter(letter)
	if !ok {
		return State{}, fmt.Errorf("%w: %q is not a single letter", ErrInvalidInput, letter)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.cell(wordIndex, letterIndex)
	if err != nil {
		return State{}, err
	}
	*c = Cell{Letter: up, Filled: true}

	if e.complete() {
		e.sentence = e.extractSentence()
	}
	return e.snapshot(), nil
}

// ClearLetter empties a real cell. The target sentence is always dropped.
// Clearing an empty cell is a no-op.
func (e *Engine) ClearLetter(wordIndex, letterIndex int) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.cell(wordIndex, letterIndex)
	if err != nil {
		return State{}, err
	}
	*c = Cell{}
	e.sentence = ""
	return e.snapshot(), nil
}

// Reset empties every real cell and drops the target sentence.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	for wi := range e.words {
		cells := e.words[wi].Cells
		for i := range cells {
			if !cells[i].Padding {
				cells[i] = Cell{}
			}
		}
	}
	e.sentence = ""
	return e.snapshot()
}

// State returns the current snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// IsComplete reports whether every real cell of every word is filled.
func (e *Engine) IsComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.complete()
}

// AvailableHints returns all hints in their original order.
func (e *Engine) AvailableHints() []Hint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Hint(nil), e.hints...)
}

// cell resolves an unpadded (word, letter) pair to its grid cell.
// Callers must hold e.mu.
func (e *Engine) cell(wordIndex, letterIndex int) (*Cell, error) {
	if wordIndex < 0 || wordIndex >= len(e.words) {
		return nil, fmt.Errorf("%w: word %d of %d", ErrOutOfRange, wordIndex, len(e.words))
	}
	if letterIndex < 0 || letterIndex >= len(e.answers[wordIndex]) {
		return nil, fmt.Errorf("%w: letter %d of word %d (%d letters)",
			ErrOutOfRange, letterIndex, wordIndex, len(e.answers[wordIndex]))
	}
	w := &e.words[wordIndex]
	return &w.Cells[w.LeftPad+letterIndex], nil
}

func (e *Engine) complete() bool {
	for _, w := range e.words {
		if !w.Filled() {
			return false
		}
	}
	return true
}

// extractSentence reads the aligned column of every word in word-index order.
// An empty cell there becomes '?'; that only happens if the layout is broken.
func (e *Engine) extractSentence() string {
	var b strings.Builder
	for _, w := range e.words {
		c := w.Cells[e.column]
		if c.Filled {
			b.WriteByte(c.Letter)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// snapshot deep-copies the state. Callers must hold e.mu.
func (e *Engine) snapshot() State {
	words := make([]Word, len(e.words))
	for i, w := range e.words {
		w.Cells = append([]Cell(nil), w.Cells...)
		words[i] = w
	}
	return State{
		Words:          words,
		Hints:          append([]Hint(nil), e.hints...),
		AlignedColumn:  e.column,
		TargetSentence: e.sentence,
	}
}

// normalizeLetter accepts exactly one ASCII letter and returns it uppercased.
func normalizeLetter(s string) (byte, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return c, true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', true
	}
	return 0, false
}

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
