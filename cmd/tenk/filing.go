package main

import (
	"fmt"

	"github.com/fwojciec/tenk"
)

// Run executes the filing command.
func (c *FilingCmd) Run(deps *Dependencies) error {
	if c.Text {
		filing, err := deps.Analyzer.LoadFiling(deps.Ctx, c.Ticker)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, filing.Text)
		return nil
	}

	filing, err := deps.Analyzer.FindFiling(deps.Ctx, c.Ticker)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		html, err := deps.Analyzer.Filings.FetchDocument(deps.Ctx, filing.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
			return err
		}
		md, err := deps.Markdown.Convert(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Company:   %s\n", filing.CompanyName)
	fmt.Fprintf(deps.Stdout, "Ticker:    %s\n", filing.Ticker)
	fmt.Fprintf(deps.Stdout, "CIK:       %s\n", filing.CIK)
	fmt.Fprintf(deps.Stdout, "Form:      %s\n", filing.Form)
	fmt.Fprintf(deps.Stdout, "Accession: %s\n", filing.AccessionNumber)
	if !filing.FiledAt.IsZero() {
		fmt.Fprintf(deps.Stdout, "Filed:     %s\n", filing.FiledAt.Format("2006-01-02"))
	}
	fmt.Fprintf(deps.Stdout, "URL:       %s\n", filing.URL)
	return nil
}
