// Package gemini implements summarization, speech synthesis and token
// counting with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/tenk"
	"google.golang.org/genai"
)

// DefaultModel is the text model used for summaries.
const DefaultModel = "gemini-2.5-flash"

// SystemInstruction sets the voice of every summary.
const SystemInstruction = "You are Warren Buffett. " +
	"Summarize financial documents clearly and concisely. " +
	"Use tenets from 'The Warren Buffett Way' by Robert Hagstrom in your analysis."

// Ensure Summarizer implements tenk.Summarizer at compile time.
var _ tenk.Summarizer = (*Summarizer)(nil)

// Summarizer implements tenk.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize summarizes the text of a filing section.
func (s *Summarizer) Summarize(ctx context.Context, section tenk.Section, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", tenk.Errorf(tenk.EINVALID, "section text required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(section, text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("gemini summarize %s: %w", section.ID, err)
	}
	if result == nil {
		return "", tenk.Errorf(tenk.EINTERNAL, "gemini returned nil result")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", tenk.Errorf(tenk.EINTERNAL, "gemini returned an empty summary for %s", section.ID)
	}
	return summary, nil
}

// BuildConfig returns the GenerateContentConfig for summary requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the section text.
func BuildUserPrompt(section tenk.Section, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section: %s\n", section.Label())
	sb.WriteString("<section>\n")
	sb.WriteString(text)
	sb.WriteString("\n</section>\n\n")
	sb.WriteString("Task: Summarize the key points in plain English.")
	return sb.String()
}
