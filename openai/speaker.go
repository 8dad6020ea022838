// Package openai implements speech synthesis using the OpenAI audio API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/tenk"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Speech defaults.
const (
	DefaultModel = "tts-1-hd"
	DefaultVoice = "onyx"

	defaultMaxRetries = 3
)

// Ensure Speaker implements tenk.Speaker at compile time.
var _ tenk.Speaker = (*Speaker)(nil)

// Speaker implements tenk.Speaker using OpenAI text-to-speech.
type Speaker struct {
	client openai.Client
	model  string
	voice  string
}

// Option configures a Speaker.
type Option func(*config)

type config struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithMaxRetries sets the SDK's transport retry count.
func WithMaxRetries(n int) Option {
	return func(c *config) { c.maxRetries = n }
}

// NewSpeaker creates a new Speaker. Empty model or voice select the defaults.
func NewSpeaker(apiKey, model, voice string, opts ...Option) *Speaker {
	cfg := config{maxRetries: defaultMaxRetries}
	for _, opt := range opts {
		opt(&cfg)
	}
	if model == "" {
		model = DefaultModel
	}
	if voice == "" {
		voice = DefaultVoice
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.maxRetries),
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &Speaker{
		client: openai.NewClient(reqOpts...),
		model:  model,
		voice:  voice,
	}
}

// Speak reads text aloud and returns WAV audio.
func (s *Speaker) Speak(ctx context.Context, text string) (*tenk.Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, tenk.Errorf(tenk.EINVALID, "speech text required")
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatWAV,
	})
	if err != nil {
		return nil, mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai audio: %w", err)
	}
	if len(data) == 0 {
		return nil, tenk.Errorf(tenk.EINTERNAL, "openai returned no audio")
	}
	return &tenk.Audio{Data: data, MIMEType: "audio/wav"}, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("openai speak: %w", err)
	}
	switch apiErr.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return tenk.Errorf(tenk.EUNAVAILABLE, "openai speech unavailable (status %d)", apiErr.StatusCode)
	}
	return fmt.Errorf("openai speak (status %d): %w", apiErr.StatusCode, err)
}
