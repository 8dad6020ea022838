package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/tenk"
	"golang.org/x/time/rate"
)

// EDGAR endpoints.
const (
	DefaultTickersURL     = "https://www.sec.gov/files/company_tickers.json"
	DefaultSubmissionsURL = "https://data.sec.gov/submissions"
	DefaultArchivesURL    = "https://www.sec.gov/Archives/edgar/data"
)

// Ensure Client implements tenk.FilingService at compile time.
var _ tenk.FilingService = (*Client)(nil)

// Client implements tenk.FilingService against SEC EDGAR.
type Client struct {
	fetcher *fetcher

	tickersURL     string
	submissionsURL string
	archivesURL    string

	mu      sync.Mutex
	tickers map[string]string // ticker -> padded CIK
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.fetcher.client.Timeout = d
	}
}

// WithRate limits requests per second across all EDGAR hosts.
func WithRate(rps float64) Option {
	return func(c *Client) {
		c.fetcher.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryDelays sets the backoff between attempts. A nil slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.fetcher.delays = delays
	}
}

// WithLogger reports retries through logf.
func WithLogger(logf LogFunc) Option {
	return func(c *Client) {
		c.fetcher.logf = logf
	}
}

// WithBaseURLs overrides the EDGAR endpoints. Used in tests.
func WithBaseURLs(tickersURL, submissionsURL, archivesURL string) Option {
	return func(c *Client) {
		c.tickersURL = tickersURL
		c.submissionsURL = strings.TrimSuffix(submissionsURL, "/")
		c.archivesURL = strings.TrimSuffix(archivesURL, "/")
	}
}

// NewClient creates a new EDGAR client. The SEC rejects requests without a
// descriptive User-Agent such as "Jane Doe jane@example.com".
func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		fetcher: &fetcher{
			client:    &http.Client{Timeout: DefaultFetchTimeout},
			limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
			userAgent: userAgent,
			delays:    DefaultRetryDelays(),
		},
		tickersURL:     DefaultTickersURL,
		submissionsURL: DefaultSubmissionsURL,
		archivesURL:    DefaultArchivesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// LookupCIK resolves a ticker symbol to a zero-padded CIK.
// The ticker table is downloaded once and kept for the life of the client.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	t, err := tenk.NormalizeTicker(ticker)
	if err != nil {
		return "", err
	}

	tickers, err := c.loadTickers(ctx)
	if err != nil {
		return "", err
	}

	cik, ok := tickers[t]
	if !ok {
		return "", tenk.Errorf(tenk.ENOTFOUND, "ticker %q not found", t)
	}
	return cik, nil
}

func (c *Client) loadTickers(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tickers != nil {
		return c.tickers, nil
	}

	body, err := c.fetcher.get(ctx, c.tickersURL)
	if err != nil {
		return nil, translateError(err, "ticker table unavailable")
	}

	var entries map[string]tickerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ticker table: %w", err)
	}

	tickers := make(map[string]string, len(entries))
	for _, e := range entries {
		tickers[strings.ToUpper(e.Ticker)] = PadCIK(strconv.FormatInt(e.CIK, 10))
	}
	c.tickers = tickers
	return tickers, nil
}

type submissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// FindLatestFiling returns the most recent filing of the given form type.
// EDGAR lists recent filings newest first.
func (c *Client) FindLatestFiling(ctx context.Context, cik, form string) (*tenk.Filing, error) {
	if strings.TrimSpace(cik) == "" {
		return nil, tenk.Errorf(tenk.EINVALID, "CIK required")
	}
	if form == "" {
		form = tenk.FormTenK
	}
	padded := PadCIK(cik)

	body, err := c.fetcher.get(ctx, fmt.Sprintf("%s/CIK%s.json", c.submissionsURL, padded))
	if err != nil {
		return nil, translateError(err, "company %s not found", padded)
	}

	var sub submissions
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode submissions for CIK %s: %w", padded, err)
	}

	recent := sub.Filings.Recent
	for i, f := range recent.Form {
		if f != form {
			continue
		}
		if i >= len(recent.AccessionNumber) || i >= len(recent.PrimaryDocument) {
			return nil, fmt.Errorf("malformed submissions for CIK %s", padded)
		}

		filing := &tenk.Filing{
			CIK:             padded,
			CompanyName:     sub.Name,
			Form:            f,
			AccessionNumber: recent.AccessionNumber[i],
			PrimaryDocument: recent.PrimaryDocument[i],
			URL:             c.ArchiveURL(padded, recent.AccessionNumber[i], recent.PrimaryDocument[i]),
		}
		if i < len(recent.FilingDate) {
			if t, err := time.Parse(time.DateOnly, recent.FilingDate[i]); err == nil {
				filing.FiledAt = t
			}
		}
		return filing, nil
	}

	return nil, tenk.Errorf(tenk.ENOTFOUND, "no %s filing found for CIK %s", form, padded)
}

// FetchDocument retrieves the raw HTML of a filing document.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", tenk.Errorf(tenk.EINVALID, "document URL required")
	}
	body, err := c.fetcher.get(ctx, url)
	if err != nil {
		return "", translateError(err, "document %s not found", url)
	}
	return string(body), nil
}

// ArchiveURL builds the archive URL of a filing document. The archive path
// uses the unpadded CIK and the accession number without dashes.
func (c *Client) ArchiveURL(cik, accession, document string) string {
	n, err := strconv.ParseInt(cik, 10, 64)
	if err != nil {
		n = 0
	}
	return fmt.Sprintf("%s/%d/%s/%s", c.archivesURL, n, strings.ReplaceAll(accession, "-", ""), document)
}

// PadCIK left-pads a CIK with zeros to 10 digits.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}
