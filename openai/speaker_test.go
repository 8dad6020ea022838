package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeaker_Speak(t *testing.T) {
	t.Parallel()

	t.Run("requests wav and returns audio", func(t *testing.T) {
		t.Parallel()

		var payload map[string]any
		var path, auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&payload)
			w.Header().Set("Content-Type", "audio/wav")
			_, _ = w.Write([]byte("RIFF-bytes"))
		}))
		defer srv.Close()

		s := openai.NewSpeaker("test-key", "", "", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))

		audio, err := s.Speak(context.Background(), "  Apple faces intense competition.  ")

		require.NoError(t, err)
		assert.Equal(t, "RIFF-bytes", string(audio.Data))
		assert.Equal(t, "audio/wav", audio.MIMEType)
		assert.Equal(t, "/audio/speech", path)
		assert.Equal(t, "Bearer test-key", auth)
		assert.Equal(t, "Apple faces intense competition.", payload["input"])
		assert.Equal(t, openai.DefaultModel, payload["model"])
		assert.Equal(t, openai.DefaultVoice, payload["voice"])
		assert.Equal(t, "wav", payload["response_format"])
	})

	t.Run("uses configured model and voice", func(t *testing.T) {
		t.Parallel()

		var payload map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&payload)
			_, _ = w.Write([]byte("RIFF"))
		}))
		defer srv.Close()

		s := openai.NewSpeaker("k", "tts-1", "alloy", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))

		_, err := s.Speak(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "tts-1", payload["model"])
		assert.Equal(t, "alloy", payload["voice"])
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		s := openai.NewSpeaker("k", "", "")

		_, err := s.Speak(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, tenk.EINVALID, tenk.ErrorCode(err))
	})

	t.Run("maps rate limiting to unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
		}))
		defer srv.Close()

		s := openai.NewSpeaker("k", "", "", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))

		_, err := s.Speak(context.Background(), "hello")

		require.Error(t, err)
		assert.Equal(t, tenk.EUNAVAILABLE, tenk.ErrorCode(err))
	})

	t.Run("reports other API errors as internal", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"bad voice"}}`))
		}))
		defer srv.Close()

		s := openai.NewSpeaker("k", "", "", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))

		_, err := s.Speak(context.Background(), "hello")

		require.Error(t, err)
		assert.Equal(t, tenk.EINTERNAL, tenk.ErrorCode(err))
	})

	t.Run("rejects empty audio", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := openai.NewSpeaker("k", "", "", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))

		_, err := s.Speak(context.Background(), "hello")

		require.Error(t, err)
	})
}
