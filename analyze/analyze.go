// Package analyze coordinates filing retrieval, section extraction,
// summarization, speech synthesis and caching of 10-K section analyses.
package analyze

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/xxhash"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxTokens bounds the text sent to the summarizer.
	DefaultMaxTokens = 900_000

	// DefaultConcurrency is the number of sections analyzed at once by AnalyzeAll.
	DefaultConcurrency = 4
)

// FallbackPolicy decides what to summarize when a section cannot be located.
type FallbackPolicy int

const (
	// FallbackNone reports ENOTFOUND.
	FallbackNone FallbackPolicy = iota
	// FallbackDocument summarizes the whole filing instead.
	FallbackDocument
)

// ParseFallbackPolicy parses "none" or "document".
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch s {
	case "", "none":
		return FallbackNone, nil
	case "document":
		return FallbackDocument, nil
	default:
		return FallbackNone, tenk.Errorf(tenk.EINVALID, "unknown fallback policy %q", s)
	}
}

// Options controls how an analysis is produced.
type Options struct {
	// Speech requests an audio rendition of the summary.
	Speech bool
	// Refresh bypasses the analysis cache.
	Refresh bool
}

// Request identifies one section analysis.
type Request struct {
	Ticker  string
	Section string
	Options
}

// Analyzer turns a ticker and a section into a summarized analysis.
// Speaker, Analyses and TokenCounter are optional.
type Analyzer struct {
	Filings      tenk.FilingService
	Converter    tenk.Converter
	Summarizer   tenk.Summarizer
	Speaker      tenk.Speaker
	Analyses     tenk.AnalysisService
	TokenCounter tenk.TokenCounter
	Logger       *slog.Logger

	Fallback    FallbackPolicy
	MaxTokens   int
	Concurrency int
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// FindFiling returns the metadata of the latest 10-K filed for ticker.
func (a *Analyzer) FindFiling(ctx context.Context, ticker string) (*tenk.Filing, error) {
	ticker, err := tenk.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	cik, err := a.Filings.LookupCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	filing, err := a.Filings.FindLatestFiling(ctx, cik, tenk.FormTenK)
	if err != nil {
		return nil, err
	}
	filing.Ticker = ticker
	return filing, nil
}

// LoadFiling returns the latest 10-K for ticker with its document converted
// to plain text in Filing.Text.
func (a *Analyzer) LoadFiling(ctx context.Context, ticker string) (*tenk.Filing, error) {
	filing, err := a.FindFiling(ctx, ticker)
	if err != nil {
		return nil, err
	}

	html, err := a.Filings.FetchDocument(ctx, filing.URL)
	if err != nil {
		return nil, err
	}

	text, err := a.Converter.Convert(html)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", filing.URL, err)
	}
	filing.Text = text
	return filing, nil
}

// Extract returns the latest 10-K for ticker and the requested section of it,
// without summarizing.
func (a *Analyzer) Extract(ctx context.Context, ticker, section string) (*tenk.Filing, *tenk.Extraction, error) {
	id, err := tenk.ParseSectionID(section)
	if err != nil {
		return nil, nil, err
	}

	filing, err := a.LoadFiling(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}

	ext, err := tenk.Extract(filing.Text, id)
	if err != nil {
		return filing, nil, err
	}
	return filing, ext, nil
}

// Analyze summarizes one section of the latest 10-K for req.Ticker.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*tenk.Analysis, error) {
	id, err := tenk.ParseSectionID(req.Section)
	if err != nil {
		return nil, err
	}

	filing, err := a.LoadFiling(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	return a.analyzeFiling(ctx, filing, id, req.Options)
}

// AnalyzeAll summarizes several sections of one filing concurrently. Results
// follow the order of sections. The first failure cancels the rest.
func (a *Analyzer) AnalyzeAll(ctx context.Context, ticker string, sections []string, opts Options) ([]*tenk.Analysis, error) {
	if len(sections) == 0 {
		return nil, tenk.Errorf(tenk.EINVALID, "at least one section required")
	}

	ids := make([]tenk.SectionID, len(sections))
	for i, s := range sections {
		id, err := tenk.ParseSectionID(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	filing, err := a.LoadFiling(ctx, ticker)
	if err != nil {
		return nil, err
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*tenk.Analysis, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			analysis, err := a.analyzeFiling(gctx, filing, id, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			results[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Analyzer) analyzeFiling(ctx context.Context, filing *tenk.Filing, id tenk.SectionID, opts Options) (*tenk.Analysis, error) {
	section, _ := tenk.FindSection(id)

	text, fallback, err := a.sectionText(filing, id)
	if err != nil {
		return nil, err
	}

	text, truncated, err := a.truncate(ctx, text)
	if err != nil {
		return nil, err
	}

	hash := xxhash.Hash(text)

	if !opts.Refresh && a.Analyses != nil {
		cached, err := a.Analyses.FindAnalyses(ctx, tenk.AnalysisFilter{
			AccessionNumber: &filing.AccessionNumber,
			Section:         &id,
			ContentHash:     &hash,
			WithAudio:       opts.Speech && a.Speaker != nil,
			Limit:           1,
		})
		if err != nil {
			return nil, err
		}
		if len(cached) > 0 {
			a.logger().Debug("analysis cache hit", "ticker", filing.Ticker, "section", id, "id", cached[0].ID)
			return cached[0], nil
		}
	}

	summary, err := a.Summarizer.Summarize(ctx, section, text)
	if err != nil {
		return nil, err
	}

	analysis := &tenk.Analysis{
		Ticker:          filing.Ticker,
		CIK:             filing.CIK,
		AccessionNumber: filing.AccessionNumber,
		FilingURL:       filing.URL,
		Section:         id,
		ContentHash:     hash,
		Summary:         summary,
		Fallback:        fallback,
		Truncated:       truncated,
	}

	if opts.Speech {
		a.speak(ctx, analysis)
	}

	if a.Analyses != nil {
		if err := a.Analyses.CreateAnalysis(ctx, analysis); err != nil {
			a.logger().Warn("analysis not cached", "ticker", filing.Ticker, "section", id, "error", err)
		}
	}

	return analysis, nil
}

// speak attaches audio to analysis. Failures leave the analysis without audio.
func (a *Analyzer) speak(ctx context.Context, analysis *tenk.Analysis) {
	if a.Speaker == nil {
		a.logger().Warn("speech requested but no speaker configured")
		return
	}
	audio, err := a.Speaker.Speak(ctx, analysis.Summary)
	if err != nil {
		a.logger().Warn("speech synthesis failed", "ticker", analysis.Ticker, "section", analysis.Section, "error", err)
		return
	}
	analysis.Audio = audio
}

func (a *Analyzer) sectionText(filing *tenk.Filing, id tenk.SectionID) (string, bool, error) {
	ext, err := tenk.Extract(filing.Text, id)
	if err == nil {
		return ext.Text, false, nil
	}
	if tenk.ErrorCode(err) != tenk.ENOTFOUND || a.Fallback != FallbackDocument {
		return "", false, err
	}

	if filing.Text == "" {
		return "", false, err
	}
	a.logger().Info("section not found, summarizing whole document", "ticker", filing.Ticker, "section", id)
	return filing.Text, true, nil
}

// truncate shortens text to the longest rune prefix within MaxTokens.
func (a *Analyzer) truncate(ctx context.Context, text string) (string, bool, error) {
	if a.TokenCounter == nil || a.MaxTokens < 0 {
		return text, false, nil
	}
	limit := a.MaxTokens
	if limit == 0 {
		limit = DefaultMaxTokens
	}

	n, err := a.TokenCounter.CountTokens(ctx, text)
	if err != nil {
		return "", false, err
	}
	if n <= limit {
		return text, false, nil
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		n, err := a.TokenCounter.CountTokens(ctx, string(runes[:mid]))
		if err != nil {
			return "", false, err
		}
		if n <= limit {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	a.logger().Info("section truncated", "tokens", n, "limit", limit)
	return string(runes[:lo]), true, nil
}
