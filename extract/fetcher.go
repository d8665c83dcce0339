package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxRedirects        = 5
	maxBodyBytes        = 10 << 20 // 10 MiB cap on fetched HTML
)

// Browser-like identities rotated per request. Sites that serve different
// content to obvious bots get a plausible desktop or mobile agent instead.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Mobile/15E148 Safari/604.1",
}

// Fetcher retrieves raw HTML for article URLs with a browser-like request
// identity. Safe for concurrent use.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout. Default is 10 seconds.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithFetcherLogger sets a custom logger. Default is slog.Default().
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
	}
}

// NewFetcher creates a fetcher with a bounded timeout and redirect limit.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: defaultFetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchHTML retrieves the raw HTML body of the given URL.
// Failures are returned as *FetchError, classified by HTTP status.
func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	f.logger.Debug("fetching content", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchUnreachable, URL: rawURL, Err: err}
	}

	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetch failed", "url", rawURL, "err", err)
		return "", &FetchError{Kind: FetchUnreachable, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := classifyStatus(resp.StatusCode)
		f.logger.Warn("fetch rejected", "url", rawURL, "status", resp.StatusCode, "kind", kind.String())
		return "", &FetchError{Kind: kind, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{Kind: FetchUnreachable, URL: rawURL, Err: err}
	}

	return string(body), nil
}

func classifyStatus(status int) FetchKind {
	switch status {
	case http.StatusForbidden, http.StatusUnauthorized:
		return FetchForbidden
	case http.StatusNotFound:
		return FetchNotFound
	case http.StatusTooManyRequests:
		return FetchRateLimited
	default:
		return FetchUnreachable
	}
}
