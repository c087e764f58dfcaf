// Package assets embeds the default puzzle catalog so the server runs
// without any PUZZLE_FILE configured.
package assets

import _ "embed"

//go:embed puzzles.yaml
var puzzles []byte

// DefaultPuzzles returns a copy of the embedded catalog YAML.
func DefaultPuzzles() []byte {
	return append([]byte(nil), puzzles...)
}
