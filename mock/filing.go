package mock

import (
	"context"

	"github.com/fwojciec/tenk"
)

var _ tenk.FilingService = (*FilingService)(nil)

// FilingService is a mock implementation of tenk.FilingService.
type FilingService struct {
	LookupCIKFn        func(ctx context.Context, ticker string) (string, error)
	FindLatestFilingFn func(ctx context.Context, cik, form string) (*tenk.Filing, error)
	FetchDocumentFn    func(ctx context.Context, url string) (string, error)
}

func (s *FilingService) LookupCIK(ctx context.Context, ticker string) (string, error) {
	return s.LookupCIKFn(ctx, ticker)
}

func (s *FilingService) FindLatestFiling(ctx context.Context, cik, form string) (*tenk.Filing, error) {
	return s.FindLatestFilingFn(ctx, cik, form)
}

func (s *FilingService) FetchDocument(ctx context.Context, url string) (string, error) {
	return s.FetchDocumentFn(ctx, url)
}
