package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tenk"
)

// Ensure LoggingFilingService implements tenk.FilingService.
var _ tenk.FilingService = (*LoggingFilingService)(nil)

// LoggingFilingService wraps a FilingService with request logging.
type LoggingFilingService struct {
	next   tenk.FilingService
	logger *slog.Logger
}

// NewLoggingFilingService creates a new LoggingFilingService.
func NewLoggingFilingService(next tenk.FilingService, logger *slog.Logger) *LoggingFilingService {
	return &LoggingFilingService{next: next, logger: logger}
}

// LookupCIK delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) LookupCIK(ctx context.Context, ticker string) (cik string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("cik lookup",
			"ticker", ticker,
			"cik", cik,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LookupCIK(ctx, ticker)
}

// FindLatestFiling delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) FindLatestFiling(ctx context.Context, cik, form string) (filing *tenk.Filing, err error) {
	defer func(begin time.Time) {
		var accession string
		if filing != nil {
			accession = filing.AccessionNumber
		}
		s.logger.Info("latest filing",
			"cik", cik,
			"form", form,
			"accession", accession,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLatestFiling(ctx, cik, form)
}

// FetchDocument delegates to the wrapped service and logs the operation.
func (s *LoggingFilingService) FetchDocument(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch document",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchDocument(ctx, url)
}
