// Package fetch issues resilient HTTP GETs against the upstream site:
// bounded attempts, a randomized backoff window between attempts and a fresh
// client identity on every request
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/config"
	"chef-scraper/pkg/identity"
	"chef-scraper/pkg/utils"
)

// Fetcher performs HTTP GETs with bounded retries. Unlike fixed-interval
// retry loops, the delay between attempts is drawn uniformly from the
// configured window so repeated hits against a rate-limiting upstream neither
// stampede nor fingerprint themselves
type Fetcher struct {
	client *http.Client
	ids    *identity.Pool
	cfg    *config.AppConfig
	log    *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, ids *identity.Pool, cfg *config.AppConfig, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		ids:    ids,
		cfg:    cfg,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FetchMarkup GETs rawURL and parses the body as an HTML document.
// After all attempts fail the returned error wraps utils.ErrRetryFailed;
// callers treat that as "upstream unavailable"
func (f *Fetcher) FetchMarkup(ctx context.Context, rawURL string, extra http.Header) (*goquery.Document, error) {
	var doc *goquery.Document
	err := f.fetch(ctx, rawURL, extra, func(body io.Reader) error {
		var parseErr error
		doc, parseErr = goquery.NewDocumentFromReader(body)
		if parseErr != nil {
			return utils.WrapErrorf(utils.ErrParsing, "HTML: %v", parseErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FetchJSON GETs rawURL and decodes the body into v. Same retry and failure
// contract as FetchMarkup
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, extra http.Header, v any) error {
	return f.fetch(ctx, rawURL, extra, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return utils.WrapErrorf(utils.ErrParsing, "JSON: %v", err)
		}
		return nil
	})
}

// fetch runs the attempt loop. Every failure mode (transport error, non-2xx
// status, undecodable body) counts as a failed attempt followed by a
// randomized sleep; a decoded 2xx returns immediately
func (f *Fetcher) fetch(ctx context.Context, rawURL string, extra http.Header, decode func(io.Reader) error) error {
	var lastErr error
	reqLog := f.log.WithField("url", rawURL)

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		// Backoff before every retry (not before the first attempt),
		// respecting context cancellation during the sleep
		if attempt > 1 {
			delay := f.backoffDelay()
			reqLog.WithFields(logrus.Fields{"attempt": attempt, "delay": delay}).Warn("Retrying request...")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				if lastErr != nil {
					return fmt.Errorf("context cancelled (%v) during retry delay after error: %w", ctx.Err(), lastErr)
				}
				return fmt.Errorf("context cancelled during retry delay: %w", ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			// A malformed URL never becomes fetchable; don't burn attempts on it
			return utils.WrapErrorf(utils.ErrRequestCreation, "%v", err)
		}
		for name, values := range extra {
			for _, v := range values {
				req.Header.Add(name, v)
			}
		}
		// Fresh identity on every attempt
		req.Header.Set(identity.HeaderName, f.ids.Next())

		resp, err := f.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reqLog.Warnf("Context cancelled/timed out during HTTP request execution: %v", err)
				return err
			}
			reqLog.WithField("attempt", attempt).Errorf("Network error: %v", err)
			lastErr = err
			continue
		}

		statusCode := resp.StatusCode
		if statusCode < 200 || statusCode >= 300 {
			reqLog.WithFields(logrus.Fields{"status_code": statusCode, "attempt": attempt}).Warn("Bad status code")
			lastErr = statusError(statusCode, resp.Status)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}

		decodeErr := decode(resp.Body)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if decodeErr != nil {
			reqLog.WithField("attempt", attempt).Errorf("Decode error: %v", decodeErr)
			lastErr = decodeErr
			continue
		}

		reqLog.WithField("attempt", attempt).Debug("Successfully fetched")
		return nil
	}

	reqLog.Errorf("All %d fetch attempts failed. Last error: %v", f.cfg.MaxAttempts, lastErr)
	if lastErr != nil {
		return fmt.Errorf("%w: %w", utils.ErrRetryFailed, lastErr)
	}
	return utils.ErrRetryFailed
}

// backoffDelay draws a duration uniformly from [MinRetryDelay, MaxRetryDelay)
func (f *Fetcher) backoffDelay() time.Duration {
	min := f.cfg.MinRetryDelay
	max := f.cfg.MaxRetryDelay
	if max <= min {
		return min
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return min + time.Duration(f.rng.Int63n(int64(max-min)))
}

// statusError wraps a non-2xx status with the matching sentinel
func statusError(code int, status string) error {
	switch {
	case code >= 500:
		return fmt.Errorf("%w: status %d %s", utils.ErrServerHTTPError, code, status)
	case code >= 400:
		return fmt.Errorf("%w: status %d %s", utils.ErrClientHTTPError, code, status)
	default:
		return fmt.Errorf("%w: status %d %s", utils.ErrOtherHTTPError, code, status)
	}
}

// Unavailable reports whether err means the upstream stayed unreachable
// through all retries
func Unavailable(err error) bool {
	return errors.Is(err, utils.ErrRetryFailed)
}
