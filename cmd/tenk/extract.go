package main

import (
	"fmt"

	"github.com/fwojciec/tenk"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	filing, ext, err := deps.Analyzer.Extract(deps.Ctx, c.Ticker, c.Section)
	if err != nil {
		if tenk.ErrorCode(err) == tenk.ENOTFOUND && filing != nil {
			fmt.Fprintf(deps.Stderr, "error: %s in %s\n", tenk.ErrorMessage(err), filing.URL)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
		return err
	}

	if c.Offsets {
		fmt.Fprintf(deps.Stdout, "%s\t%d\t%d\t%s\n", ext.Section, ext.Start, ext.End, filing.URL)
		return nil
	}

	fmt.Fprintln(deps.Stdout, ext.Text)
	return nil
}
