package main

import (
	"fmt"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	analyses, err := deps.Analyzer.AnalyzeAll(deps.Ctx, c.Ticker, c.Sections, analyze.Options{
		Speech:  c.Speech,
		Refresh: c.Refresh,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
		return err
	}

	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}

		title := string(a.Section)
		if s, ok := tenk.FindSection(a.Section); ok {
			title = s.Label()
		}
		fmt.Fprintf(deps.Stdout, "## %s: %s\n", a.Ticker, title)
		if a.Fallback {
			fmt.Fprintln(deps.Stdout, "(section not found; summary covers the whole filing)")
		}
		if a.Truncated {
			fmt.Fprintln(deps.Stdout, "(section truncated to fit the model context)")
		}
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, a.Summary)

		if c.Speech && a.Audio == nil {
			fmt.Fprintf(deps.Stderr, "warning: no audio for %s\n", a.Section)
		}

		if deps.Writer != nil {
			paths, err := deps.Writer.WriteAnalysis(deps.Ctx, a)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(deps.Stderr, "wrote %s\n", p)
			}
		}
	}

	return nil
}
