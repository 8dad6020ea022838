package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/tenk/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("tokenizer downloads model data")
	}

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	t.Run("counts tokens in section text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Item 1A. Risk Factors\nCompetition is intense.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		short, err := tc.CountTokens(ctx, "Competition")
		require.NoError(t, err)

		long, err := tc.CountTokens(ctx, strings.Repeat("Competition is intense and supply chains are fragile. ", 20))
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "Competition")

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-model")
}
