package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/onlinedenker/denker/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a puzzle catalog",
		Long: `Validate loads a puzzle catalog, solves every puzzle with its own answers
and prints the hidden sentence. Without a file the embedded default catalog is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd.OutOrStdout(), path, only)
		},
	}

	cmd.Flags().StringVar(&only, "puzzle", "", "Only check the puzzle with this id")

	return cmd
}

func runValidate(out io.Writer, path, only string) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	puzzles := cat.Puzzles()
	if only != "" {
		p, err := cat.Get(only)
		if err != nil {
			return err
		}
		puzzles = []*catalog.Puzzle{p}
	}
	for _, p := range puzzles {
		sentence, column, err := solve(p)
		if err != nil {
			return fmt.Errorf("puzzle %q: %w", p.ID, err)
		}
		fmt.Fprintf(out, "%-12s words=%d column=%d sentence=%s\n", p.ID, len(p.Words), column, sentence)
	}
	fmt.Fprintf(out, "%d puzzle(s) OK\n", len(puzzles))
	return nil
}

// solve fills a fresh engine with the puzzle's answers and returns the resulting sentence.
func solve(p *catalog.Puzzle) (string, int, error) {
	e, err := p.NewEngine()
	if err != nil {
		return "", 0, err
	}
	for _, w := range p.Words {
		answer := p.Answer(w.WordIndex)
		for i := 0; i < len(answer); i++ {
			if _, err := e.SetLetter(w.WordIndex, i, answer[i:i+1]); err != nil {
				return "", 0, err
			}
		}
	}
	st := e.State()
	if !st.Complete() {
		return "", 0, fmt.Errorf("not complete after filling every answer")
	}
	return st.TargetSentence, st.AlignedColumn, nil
}
