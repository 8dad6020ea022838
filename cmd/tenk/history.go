package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/tenk"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := tenk.AnalysisFilter{Limit: c.Limit}
	if c.Ticker != "" {
		filter.Ticker = &c.Ticker
	}

	analyses, err := deps.Analyses.FindAnalyses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
		return err
	}

	if len(analyses) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses found. Use 'tenk analyze' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range analyses {
		audio := "-"
		if a.Audio != nil {
			audio = "audio"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Ticker, a.Section, a.AccessionNumber, audio, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
