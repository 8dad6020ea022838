package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/mock"
	tenkslog "github.com/fwojciec/tenk/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("logs section and sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, section tenk.Section, text string) (string, error) {
				return "short", nil
			},
		}
		section, _ := tenk.FindSection(tenk.SectionRiskFactors)

		s := tenkslog.NewLoggingSummarizer(inner, logger)
		summary, err := s.Summarize(context.Background(), section, "a much longer input")

		require.NoError(t, err)
		assert.Equal(t, "short", summary)
		output := buf.String()
		assert.Contains(t, output, "summarize")
		assert.Contains(t, output, "section=risk_factors")
		assert.Contains(t, output, "input_bytes=19")
		assert.Contains(t, output, "output_bytes=5")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Summarizer{
			SummarizeFn: func(ctx context.Context, section tenk.Section, text string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		s := tenkslog.NewLoggingSummarizer(inner, logger)
		_, err := s.Summarize(context.Background(), tenk.Section{ID: tenk.SectionBusiness}, "text")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"quota exceeded\"")
	})
}

func TestLoggingSpeaker_Speak(t *testing.T) {
	t.Parallel()

	t.Run("logs audio size and type", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Speaker{
			SpeakFn: func(ctx context.Context, text string) (*tenk.Audio, error) {
				return &tenk.Audio{Data: make([]byte, 64), MIMEType: "audio/wav"}, nil
			},
		}

		s := tenkslog.NewLoggingSpeaker(inner, logger)
		audio, err := s.Speak(context.Background(), "hello")

		require.NoError(t, err)
		assert.Len(t, audio.Data, 64)
		output := buf.String()
		assert.Contains(t, output, "speak")
		assert.Contains(t, output, "audio_bytes=64")
		assert.Contains(t, output, "mime=audio/wav")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Speaker{
			SpeakFn: func(ctx context.Context, text string) (*tenk.Audio, error) {
				return nil, errors.New("no audio")
			},
		}

		s := tenkslog.NewLoggingSpeaker(inner, logger)
		_, err := s.Speak(context.Background(), "hello")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "audio_bytes=0")
		assert.Contains(t, buf.String(), "err=\"no audio\"")
	})
}
