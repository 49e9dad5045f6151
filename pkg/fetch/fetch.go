// Package fetch opens geofeeds from URLs, files or standard input.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/geofeed/validator/pkg/logger"
)

// Stdin is the source name for standard input.
const Stdin = "-"

// Defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultRetries   = 3
	DefaultBaseDelay = 500 * time.Millisecond
	DefaultUserAgent = "geofeed-validator"
)

// ErrStatus is returned for HTTP responses other than 200 OK.
var ErrStatus = errors.New("unexpected HTTP status")

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds a single HTTP attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// Retries is the number of extra attempts after server errors or
	// transport failures.
	Retries uint64

	// BaseDelay is the first backoff delay. Zero means DefaultBaseDelay.
	BaseDelay time.Duration

	UserAgent string

	// Client overrides the HTTP client.
	Client *http.Client

	// Stdin overrides standard input.
	Stdin io.Reader

	Logger zerolog.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
		BaseDelay: DefaultBaseDelay,
		UserAgent: DefaultUserAgent,
		Logger:    logger.Default(),
	}
}

// Fetcher opens feed sources.
type Fetcher struct {
	opts   Options
	client *http.Client
	stdin  io.Reader
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := opts.Client
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = opts.Timeout
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Fetcher{opts: opts, client: client, stdin: stdin}
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open returns the feed named by source: an http(s) URL, Stdin or a file
// path. The caller closes the returned reader.
func (f *Fetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == Stdin:
		return io.NopCloser(f.stdin), nil
	case IsURL(source):
		return f.get(ctx, source)
	default:
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open feed: %w", err)
		}
		return file, nil
	}
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	backoff := retry.WithMaxRetries(f.opts.Retries, retry.NewExponential(f.opts.BaseDelay))

	var body io.ReadCloser
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)
		req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

		resp, err := f.client.Do(req)
		if err != nil {
			f.opts.Logger.Debug().Err(err).Str("url", url).Int("attempt", attempt).Msg("fetch failed")
			return retry.RetryableError(err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = resp.Body
			return nil
		case resp.StatusCode >= 500:
			drain(resp.Body)
			f.opts.Logger.Debug().Int("status", resp.StatusCode).Str("url", url).Int("attempt", attempt).Msg("server error")
			return retry.RetryableError(fmt.Errorf("%w: %s", ErrStatus, resp.Status))
		default:
			drain(resp.Body)
			return fmt.Errorf("%w: %s", ErrStatus, resp.Status)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	f.opts.Logger.Debug().Str("url", url).Int("attempts", attempt).Msg("feed fetched")
	return body, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
