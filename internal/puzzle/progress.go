package puzzle

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Progress summarizes how far a player is through a puzzle.
type Progress struct {
	SolvedWords   int  `json:"solvedWords"` // words with every real cell filled
	TotalWords    int  `json:"totalWords"`
	FilledLetters int  `json:"filledLetters"`
	TotalLetters  int  `json:"totalLetters"`
	Percent       int  `json:"percent"`
	Complete      bool `json:"isComplete"`
}

// ProgressOf computes progress from a snapshot. Padding cells are not counted.
func ProgressOf(s State) Progress {
	p := Progress{TotalWords: len(s.Words), Complete: s.Complete()}
	for _, w := range s.Words {
		if w.Filled() {
			p.SolvedWords++
		}
		p.TotalLetters += w.LetterCount
		for _, c := range w.Cells {
			if c.Filled {
				p.FilledLetters++
			}
		}
	}
	if p.TotalLetters > 0 {
		p.Percent = int(math.Round(float64(p.FilledLetters) * 100 / float64(p.TotalLetters)))
	}
	return p
}

// FormatElapsed renders a duration as "1h 2m 3s", "2m 3s" or "3s".
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// HiddenMessage reads the aligned column as it currently stands, '?' for empty cells.
func HiddenMessage(s State) string {
	var b strings.Builder
	for _, w := range s.Words {
		if s.AlignedColumn < len(w.Cells) && w.Cells[s.AlignedColumn].Filled {
			b.WriteByte(w.Cells[s.AlignedColumn].Letter)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

const shareEmoji = "🎯🧩🎮"

// ShareText builds the shareable result summary for a day.
func ShareText(day int, s State) string {
	p := ProgressOf(s)
	return fmt.Sprintf("Daily Word Puzzle - Day %d\n%d/%d words filled\nHidden message: %s\n%s",
		day, p.SolvedWords, p.TotalWords, HiddenMessage(s), shareEmoji)
}
