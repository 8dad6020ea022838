package tenk

import (
	"context"
	"time"
)

// Analysis is a generated summary of one section of one filing.
type Analysis struct {
	ID              string    `json:"id"`
	Ticker          string    `json:"ticker"`
	CIK             string    `json:"cik"`
	AccessionNumber string    `json:"accessionNumber"`
	FilingURL       string    `json:"filingUrl"`
	Section         SectionID `json:"section"`
	ContentHash     string    `json:"contentHash"`
	Summary         string    `json:"summary"`
	Audio           *Audio    `json:"audio,omitempty"`

	// Fallback is set when the section was not found and the whole
	// document was summarized instead.
	Fallback bool `json:"fallback"`

	// Truncated is set when the section exceeded the token budget.
	Truncated bool `json:"truncated"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the analysis contains invalid fields.
func (a *Analysis) Validate() error {
	if a.Ticker == "" {
		return Errorf(EINVALID, "analysis ticker required")
	}
	if a.AccessionNumber == "" {
		return Errorf(EINVALID, "analysis accession number required")
	}
	if err := a.Section.Validate(); err != nil {
		return err
	}
	return nil
}

// AnalysisService represents a service for storing generated analyses.
type AnalysisService interface {
	// CreateAnalysis stores a new analysis, assigning its ID and timestamp.
	CreateAnalysis(ctx context.Context, a *Analysis) error

	// FindAnalysisByID retrieves an analysis by ID.
	// Returns ENOTFOUND if the analysis does not exist.
	FindAnalysisByID(ctx context.Context, id string) (*Analysis, error)

	// FindAnalyses retrieves analyses matching the filter, newest first.
	FindAnalyses(ctx context.Context, filter AnalysisFilter) ([]*Analysis, error)

	// DeleteAnalysis permanently removes an analysis.
	// Returns ENOTFOUND if the analysis does not exist.
	DeleteAnalysis(ctx context.Context, id string) error
}

// AnalysisFilter represents a filter for FindAnalyses.
type AnalysisFilter struct {
	Ticker          *string    `json:"ticker"`
	AccessionNumber *string    `json:"accessionNumber"`
	Section         *SectionID `json:"section"`
	ContentHash     *string    `json:"contentHash"`

	// WithAudio restricts results to analyses that include audio.
	WithAudio bool `json:"withAudio"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AnalysisWriter exports an analysis outside the cache, e.g. to disk.
type AnalysisWriter interface {
	// WriteAnalysis stores the summary and any audio, returning the
	// locations written.
	WriteAnalysis(ctx context.Context, a *Analysis) ([]string, error)
}
