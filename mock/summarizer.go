package mock

import (
	"context"

	"github.com/fwojciec/tenk"
)

var (
	_ tenk.Summarizer = (*Summarizer)(nil)
	_ tenk.Speaker    = (*Speaker)(nil)
)

// Summarizer is a mock implementation of tenk.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, section tenk.Section, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, section tenk.Section, text string) (string, error) {
	return s.SummarizeFn(ctx, section, text)
}

// Speaker is a mock implementation of tenk.Speaker.
type Speaker struct {
	SpeakFn func(ctx context.Context, text string) (*tenk.Audio, error)
}

func (s *Speaker) Speak(ctx context.Context, text string) (*tenk.Audio, error) {
	return s.SpeakFn(ctx, text)
}
