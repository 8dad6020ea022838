package tenk

import (
	"context"
	"strings"
	"time"
)

// FormTenK is the EDGAR form type of an annual report.
const FormTenK = "10-K"

// Filing identifies one EDGAR filing and, once fetched, its decoded text.
type Filing struct {
	Ticker          string    `json:"ticker"`
	CIK             string    `json:"cik"`
	CompanyName     string    `json:"companyName"`
	Form            string    `json:"form"`
	AccessionNumber string    `json:"accessionNumber"`
	PrimaryDocument string    `json:"primaryDocument"`
	FiledAt         time.Time `json:"filedAt"`
	URL             string    `json:"url"`

	// Text is the plain text of the primary document. Empty until fetched.
	Text string `json:"-"`
}

// Validate returns an error if the filing cannot be fetched.
func (f *Filing) Validate() error {
	if f.CIK == "" {
		return Errorf(EINVALID, "filing CIK required")
	}
	if f.AccessionNumber == "" {
		return Errorf(EINVALID, "filing accession number required")
	}
	if f.URL == "" {
		return Errorf(EINVALID, "filing URL required")
	}
	return nil
}

// NormalizeTicker upper-cases and trims a ticker symbol.
// Returns EINVALID for an empty ticker.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", Errorf(EINVALID, "ticker required")
	}
	return t, nil
}

// FilingService looks up filings in a filings index such as SEC EDGAR.
type FilingService interface {
	// LookupCIK resolves a ticker symbol to a 10-digit, zero-padded CIK.
	// Returns ENOTFOUND if the ticker is unknown.
	LookupCIK(ctx context.Context, ticker string) (string, error)

	// FindLatestFiling returns the most recent filing of the given form type.
	// Returns ENOTFOUND if the company has no such filing.
	FindLatestFiling(ctx context.Context, cik, form string) (*Filing, error)

	// FetchDocument returns the raw HTML of a filing document.
	FetchDocument(ctx context.Context, url string) (string, error)
}
