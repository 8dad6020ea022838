package http

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/avast/retry-go/v4"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, fails permanently, or
// the delays are exhausted. Only temporary failures (HTTP 429, HTTP 5xx,
// network timeouts) are retried.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) ([]byte, error) {
	attempts := uint(len(delays) + 1)

	return retry.DoWithData(
		func() ([]byte, error) {
			return fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTemporary),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return delays[n]
		}),
		retry.OnRetry(func(n uint, err error) {
			if logger != nil && n+1 < attempts {
				logger("retry %s (attempt %d): %v", url, n+2, err)
			}
		}),
	)
}

func isTemporary(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
