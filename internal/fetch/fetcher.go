// Package fetch retrieves the page a user-supplied domain or URL resolves to,
// falling back from the supplied scheme to https and then http.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/domain"
)

const (
	// DefaultTimeout bounds each candidate request, including redirects
	DefaultTimeout = 12 * time.Second
	// DefaultMaxBodySize caps the bytes read from a response body (5MB)
	DefaultMaxBodySize = 5 * 1024 * 1024
	// DefaultUserAgent is a desktop browser user agent; many sites serve
	// reduced or blocked content to unknown clients
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0 Safari/537.36"
)

// Result is a successfully fetched page
type Result struct {
	// FinalURL is the URL after all redirects were followed
	FinalURL string
	// HTML is the response body
	HTML string
	// StatusCode is the status of the final response
	StatusCode int
}

// Fetcher performs the scheme-fallback GET sequence for a single input
type Fetcher struct {
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures the Fetcher
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client used for page requests
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithTimeout sets the per-candidate request timeout
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with page requests
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize caps the number of body bytes read per response
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// New creates a Fetcher with the given options
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:  &http.Client{},
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Candidates returns the URLs tried for the input, in order: the input itself
// when it already carries a scheme, then https and http on the normalized host.
// Duplicates are dropped.
func Candidates(input string) []string {
	host := domain.Normalize(input)
	if host == "" {
		return nil
	}

	var candidates []string

	if domain.HasScheme(input) {
		candidates = append(candidates, strings.TrimSpace(input))
	}

	candidates = append(candidates,
		fmt.Sprintf("https://%s/", host),
		fmt.Sprintf("http://%s/", host),
	)

	return lo.Uniq(candidates)
}

// Fetch tries each candidate URL until one responds with a status below 400
// and a non-empty body. Redirects are followed; the returned FinalURL is the
// last URL in the chain. When every candidate fails a *FetchError carrying the
// last failure is returned.
func (f *Fetcher) Fetch(ctx context.Context, input string) (*Result, error) {
	candidates := Candidates(input)
	if len(candidates) == 0 {
		return nil, ErrEmptyInput
	}

	var lastErr error

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		res, err := f.get(ctx, candidate)
		if err == nil {
			return res, nil
		}

		log.Debug().Err(err).Str("url", candidate).Msg("fetch candidate failed")

		lastErr = err
	}

	return nil, &FetchError{Candidates: candidates, Last: lastErr}
}

// get issues a single bounded GET request for the candidate URL
func (f *Fetcher) get(ctx context.Context, target string) (*Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if len(body) == 0 {
		return nil, &emptyBodyError{code: resp.StatusCode}
	}

	return &Result{
		FinalURL:   resp.Request.URL.String(),
		HTML:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}
