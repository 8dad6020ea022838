package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/tenk"
	"google.golang.org/genai"
)

// Speech defaults.
const (
	DefaultTTSModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice    = "Kore"

	// defaultSampleRate is used when the response MIME type omits the rate.
	defaultSampleRate = 24000
)

// Ensure Speaker implements tenk.Speaker at compile time.
var _ tenk.Speaker = (*Speaker)(nil)

// Speaker implements tenk.Speaker using Gemini text-to-speech.
type Speaker struct {
	client *genai.Client
	model  string
	voice  string
}

// NewSpeaker creates a new Speaker. Empty model or voice select the defaults.
func NewSpeaker(client *genai.Client, model, voice string) *Speaker {
	if model == "" {
		model = DefaultTTSModel
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &Speaker{client: client, model: model, voice: voice}
}

// Speak reads text aloud. Gemini returns raw 16-bit PCM, which is wrapped
// in a WAV container so it plays in a browser.
func (s *Speaker) Speak(ctx context.Context, text string) (*tenk.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, tenk.Errorf(tenk.EINVALID, "speech text required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text("Read this summary: "+text),
		BuildSpeechConfig(s.voice),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini speak: %w", err)
	}

	blob := InlineAudio(result)
	if blob == nil {
		return nil, tenk.Errorf(tenk.EINTERNAL, "gemini returned no audio")
	}
	return AudioFromBlob(blob), nil
}

// BuildSpeechConfig returns the GenerateContentConfig for speech requests.
func BuildSpeechConfig(voice string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}
}

// InlineAudio returns the first inline blob of the first candidate.
func InlineAudio(result *genai.GenerateContentResponse) *genai.Blob {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	c := result.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	for _, p := range c.Content.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData
		}
	}
	return nil
}

// AudioFromBlob converts an inline blob to tenk.Audio. Raw PCM
// ("audio/L16;codec=pcm;rate=24000") is wrapped as WAV; other formats
// pass through unchanged.
func AudioFromBlob(blob *genai.Blob) *tenk.Audio {
	mime := strings.ToLower(blob.MIMEType)
	if !strings.HasPrefix(mime, "audio/l16") && !strings.HasPrefix(mime, "audio/pcm") {
		return &tenk.Audio{Data: blob.Data, MIMEType: blob.MIMEType}
	}

	return &tenk.Audio{
		Data:     EncodeWAV(blob.Data, sampleRate(mime), 1, 16),
		MIMEType: "audio/wav",
	}
}

// sampleRate reads the rate parameter of a PCM MIME type.
func sampleRate(mime string) int {
	for _, param := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || k != "rate" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultSampleRate
}
