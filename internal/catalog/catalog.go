// internal/catalog/catalog.go
//
// Puzzle catalog management.
//
// Responsibilities:
//   - Load puzzle definitions (hints + hidden answers) from a YAML file,
//     or fall back to the embedded default catalog.
//   - Validate every puzzle up front by building an engine for it, so a
//     malformed hint set fails at startup instead of at session creation.
//   - Keep answers out of anything handed to players (Puzzle.Hints).
//
// File format:
//
//	puzzles:
//	  - id: think
//	    title: Think
//	    words:
//	      - id: think-1
//	        word_index: 0
//	        letter_count: 4
//	        highlighted_letter_index: 2
//	        image_url: https://...
//	        answer: PATH

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/onlinedenker/denker/assets"
	"github.com/onlinedenker/denker/internal/puzzle"
)

// ErrUnknownPuzzle is returned by Get for an id that is not in the catalog.
var ErrUnknownPuzzle = errors.New("catalog: unknown puzzle")

// Word is one catalog entry: the public hint plus its answer.
type Word struct {
	puzzle.Hint `yaml:",inline"`
	Answer      string `yaml:"answer"`
}

// Puzzle is a named hint set with hidden answers.
type Puzzle struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Words []Word `yaml:"words"`

	answers map[int]string
}

// Catalog is an ordered, validated set of puzzles.
type Catalog struct {
	puzzles []*Puzzle
	byID    map[string]*Puzzle
}

type file struct {
	Puzzles []*Puzzle `yaml:"puzzles"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(assets.DefaultPuzzles())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
// Malformed hint sets are reported with puzzle.ErrConfiguration in the chain.
func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(f.Puzzles) == 0 {
		return nil, fmt.Errorf("%w: catalog has no puzzles", puzzle.ErrConfiguration)
	}

	c := &Catalog{byID: make(map[string]*Puzzle, len(f.Puzzles))}
	for i, p := range f.Puzzles {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: puzzle #%d has no id", puzzle.ErrConfiguration, i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate puzzle id %q", puzzle.ErrConfiguration, p.ID)
		}
		p.answers = make(map[int]string, len(p.Words))
		for _, w := range p.Words {
			p.answers[w.WordIndex] = strings.ToUpper(strings.TrimSpace(w.Answer))
		}
		if _, err := p.NewEngine(); err != nil {
			return nil, fmt.Errorf("puzzle %q: %w", p.ID, err)
		}
		c.puzzles = append(c.puzzles, p)
		c.byID[p.ID] = p
	}
	return c, nil
}

// Len returns the number of puzzles.
func (c *Catalog) Len() int { return len(c.puzzles) }

// Puzzles returns the puzzles in file order.
func (c *Catalog) Puzzles() []*Puzzle { return append([]*Puzzle(nil), c.puzzles...) }

// Get looks up a puzzle by id.
func (c *Catalog) Get(id string) (*Puzzle, error) {
	if p, ok := c.byID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPuzzle, id)
}

// Pick returns the puzzle at i modulo the catalog size.
func (c *Catalog) Pick(i int) *Puzzle {
	n := len(c.puzzles)
	return c.puzzles[((i%n)+n)%n]
}

// Hints returns the public hints of the puzzle, in file order.
func (p *Puzzle) Hints() []puzzle.Hint {
	out := make([]puzzle.Hint, len(p.Words))
	for i, w := range p.Words {
		out[i] = w.Hint
	}
	return out
}

// Answer is the puzzle's puzzle.AnswerFunc.
func (p *Puzzle) Answer(wordIndex int) string { return p.answers[wordIndex] }

// NewEngine builds a fresh, empty engine for this puzzle.
func (p *Puzzle) NewEngine() (*puzzle.Engine, error) {
	return puzzle.New(p.Hints(), p.Answer)
}
