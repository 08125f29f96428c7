package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"golang.org/x/time/rate"
)

const defaultMaxAttempts = 3

// FetchError is returned when a request fails for good, after retries
// on transient statuses are exhausted.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed with status %d", e.Url, e.StatusCode)
	}

	return fmt.Sprintf("fetch %s failed: %v", e.Url, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	var t *FetchError
	ok := errors.As(target, &t)
	return ok
}

type Options struct {
	UserAgent   string
	Delay       time.Duration
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// Client issues rate-limited GET requests against one target site.
// Requests from one client are sequential by construction: the limiter
// enforces the minimum delay between consecutive requests.
type Client struct {
	http        *resty.Client
	limiter     *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
	logger      log.Logger
}

func NewClient(opts Options) *Client {
	httpClient := resty.New()
	httpClient.SetHeader("User-Agent", opts.UserAgent)
	httpClient.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpClient.SetHeader("Accept-Language", "es-CO,es;q=0.8,en;q=0.5")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient.SetTimeout(timeout)

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	backoffBase := opts.BackoffBase
	if backoffBase <= 0 {
		backoffBase = time.Second
	}

	return &Client{
		http:        httpClient,
		limiter:     rate.NewLimiter(limit, 1),
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		logger:      log.GetLogger(),
	}
}

// Fetch gets url and returns the response body. Transport errors, timeouts
// and transient statuses (429, 5xx) are retried with exponential backoff;
// any other non-2xx status fails immediately.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	backoff := c.backoffBase
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.http.R().SetContext(ctx).Get(url)
		switch {
		case err != nil:
			lastErr = err
		case resp.IsSuccess():
			c.logger.WithField("Url", url).Debug("fetched page")
			return resp.Body(), nil
		case isTransientStatus(resp.StatusCode()):
			lastErr = &FetchError{Url: url, StatusCode: resp.StatusCode()}
		default:
			return nil, &FetchError{Url: url, StatusCode: resp.StatusCode()}
		}

		if attempt < c.maxAttempts {
			c.logger.WithFields(map[string]interface{}{
				"Url":     url,
				"Attempt": attempt,
			}).Warnf("fetch failed, retrying in %v: %v", backoff, lastErr)

			if err := util.Sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
		}
	}

	var fetchErr *FetchError
	if errors.As(lastErr, &fetchErr) {
		return nil, fetchErr
	}

	return nil, &FetchError{Url: url, Err: lastErr}
}

func isTransientStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	}

	return false
}
