package puzzle

import "errors"

var (
	// ErrConfiguration is returned by New for a malformed hint set.
	ErrConfiguration = errors.New("puzzle: invalid configuration")

	// ErrInvalidInput is returned for a letter that is not a single A–Z character.
	ErrInvalidInput = errors.New("puzzle: invalid input")

	// ErrOutOfRange is returned for a word or letter index outside the puzzle.
	ErrOutOfRange = errors.New("puzzle: index out of range")
)
