package tenk

import "context"

// Summarizer produces a plain-English summary of a filing section.
type Summarizer interface {
	// Summarize summarizes text taken from the given section.
	Summarize(ctx context.Context, section Section, text string) (string, error)
}

// Audio is synthesized speech.
type Audio struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}

// Speaker synthesizes speech.
type Speaker interface {
	// Speak reads text aloud and returns the encoded audio.
	Speak(ctx context.Context, text string) (*Audio, error)
}
