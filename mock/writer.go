package mock

import (
	"context"

	"github.com/fwojciec/tenk"
)

var _ tenk.AnalysisWriter = (*AnalysisWriter)(nil)

// AnalysisWriter is a mock implementation of tenk.AnalysisWriter.
type AnalysisWriter struct {
	WriteAnalysisFn func(ctx context.Context, a *tenk.Analysis) ([]string, error)
}

func (w *AnalysisWriter) WriteAnalysis(ctx context.Context, a *tenk.Analysis) ([]string, error) {
	return w.WriteAnalysisFn(ctx, a)
}
