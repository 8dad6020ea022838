package mock

import (
	"context"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/analyze"
)

// Analyzer is a mock of the analyzer used by the HTTP server and CLI.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req analyze.Request) (*tenk.Analysis, error)
	ExtractFn func(ctx context.Context, ticker, section string) (*tenk.Filing, *tenk.Extraction, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req analyze.Request) (*tenk.Analysis, error) {
	return a.AnalyzeFn(ctx, req)
}

func (a *Analyzer) Extract(ctx context.Context, ticker, section string) (*tenk.Filing, *tenk.Extraction, error) {
	return a.ExtractFn(ctx, ticker, section)
}
