package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/tenk"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel is used when NewTokenCounter is given no model. The
// local tokenizer supports a fixed set of models, so this need not match
// the summarization model.
const DefaultTokenizerModel = "gemini-2.5-flash"

var _ tenk.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline with the Gemini tokenizer, so section
// budgets can be checked without an API round trip.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens text would use as a single user turn.
// Truncation calls this repeatedly, so a cancelled ctx stops it early.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}
