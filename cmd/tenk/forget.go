package main

import (
	"fmt"

	"github.com/fwojciec/tenk"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if err := deps.Analyses.DeleteAnalysis(deps.Ctx, c.ID); err != nil {
		if tenk.ErrorCode(err) == tenk.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: analysis %q not found. Use 'tenk history' to see cached analyses.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tenk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted analysis %s\n", c.ID)
	return nil
}
