// Package http provides an EDGAR-backed implementation of tenk.FilingService.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/tenk"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Filing documents can be several megabytes, so this is longer than a
// typical API timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRate is the default request rate against sec.gov. SEC fair-access
// policy caps clients at 10 requests per second.
const DefaultRate = 5.0

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the request may succeed if retried.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// fetcher performs rate-limited GET requests with the SEC-required User-Agent.
type fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	delays    []time.Duration
	logf      LogFunc
}

// get retrieves url, retrying temporary failures.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	return FetchWithRetryDelays(ctx, url, f.getOnce, f.logf, f.delays)
}

func (f *fetcher) getOnce(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(resp.Body)
}

// isNotFound reports whether err is a 404 response.
func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// translateError maps transport failures onto application error codes.
func translateError(err error, format string, args ...any) error {
	var se *StatusError
	switch {
	case isNotFound(err):
		return tenk.Errorf(tenk.ENOTFOUND, format, args...)
	case errors.As(err, &se) && se.Temporary():
		return tenk.Errorf(tenk.EUNAVAILABLE, "%s: %v", fmt.Sprintf(format, args...), err)
	}
	return err
}
