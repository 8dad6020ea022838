package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tenk"
)

var (
	_ tenk.Summarizer = (*LoggingSummarizer)(nil)
	_ tenk.Speaker    = (*LoggingSpeaker)(nil)
)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   tenk.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next tenk.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs input and output sizes.
func (s *LoggingSummarizer) Summarize(ctx context.Context, section tenk.Section, text string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"section", section.ID,
			"input_bytes", len(text),
			"output_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, section, text)
}

// LoggingSpeaker wraps a Speaker with logging.
type LoggingSpeaker struct {
	next   tenk.Speaker
	logger *slog.Logger
}

// NewLoggingSpeaker creates a new LoggingSpeaker.
func NewLoggingSpeaker(next tenk.Speaker, logger *slog.Logger) *LoggingSpeaker {
	return &LoggingSpeaker{next: next, logger: logger}
}

// Speak delegates to the wrapped speaker and logs the audio produced.
func (s *LoggingSpeaker) Speak(ctx context.Context, text string) (audio *tenk.Audio, err error) {
	defer func(begin time.Time) {
		var size int
		var mime string
		if audio != nil {
			size, mime = len(audio.Data), audio.MIMEType
		}
		s.logger.Info("speak",
			"input_bytes", len(text),
			"audio_bytes", size,
			"mime", mime,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Speak(ctx, text)
}
