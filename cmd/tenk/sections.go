package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/tenk"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range tenk.Sections() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, "Item "+s.Item, s.Title)
	}
	return w.Flush()
}
