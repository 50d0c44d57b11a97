// Package fetcher retrieves remote JSON content collections. It performs one
// bounded GET per call, validates each record, and classifies every failure.
// Retry policy, if any, belongs to the caller.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

const (
	// DefaultTimeout bounds a single fetch end to end.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response body is read. Content
	// collections are small; anything larger is not ours.
	maxBodyBytes = 10 << 20

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// Client fetches content collections from their configured endpoints. It is
// stateless per call; concurrent fetches for different resources are
// independent.
type Client struct {
	http *http.Client
	urls map[models.Resource]string
	log  logger.Logger

	mu       sync.Mutex
	lastURLs map[models.Resource]string
}

// New creates a Client for the given resource endpoints. A zero timeout uses
// DefaultTimeout.
func New(urls map[models.Resource]string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
			},
		},
		urls:     urls,
		log:      log,
		lastURLs: make(map[models.Resource]string),
	}
}

// URL returns the configured endpoint for a resource.
func (c *Client) URL(res models.Resource) (string, error) {
	url, ok := c.urls[res]
	if !ok || url == "" {
		return "", fmt.Errorf("no endpoint configured for resource %q", res)
	}
	return url, nil
}

// LastURLs returns a copy of the most recently attempted URL per resource.
func (c *Client) LastURLs() map[models.Resource]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[models.Resource]string, len(c.lastURLs))
	for res, url := range c.lastURLs {
		out[res] = url
	}
	return out
}

func (c *Client) recordURL(res models.Resource, url string) {
	c.mu.Lock()
	c.lastURLs[res] = url
	c.mu.Unlock()
}

// fetchArray performs the GET and returns the raw elements of the top-level
// JSON array.
func (c *Client) fetchArray(ctx context.Context, res models.Resource) ([]json.RawMessage, error) {
	url, err := c.URL(res)
	if err != nil {
		return nil, err
	}
	c.recordURL(res, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", res, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(res, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, httpStatusError(res, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(res, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if json.Valid(body) {
			return nil, schemaError(res, "expected a JSON array of records")
		}
		return nil, parseError(res, err)
	}
	return raw, nil
}

// Records fetches the resource and decodes it into validated records of type
// T. Records failing schema validation are dropped, never fatal to the batch.
// On any failure the returned slice is empty and the error is a *Error.
func Records[T models.Record](ctx context.Context, c *Client, res models.Resource) ([]T, error) {
	raw, err := c.fetchArray(ctx, res)
	if err != nil {
		if fe, ok := AsError(err); ok {
			c.log.Warn("Content fetch failed",
				logger.String("resource", res.String()),
				logger.String("kind", string(fe.Kind)),
				logger.Error(err),
			)
		}
		return nil, err
	}

	records := make([]T, 0, len(raw))
	dropped := 0
	for i, element := range raw {
		var record T
		if err := json.Unmarshal(element, &record); err != nil {
			dropped++
			c.log.Debug("Dropping undecodable record",
				logger.String("resource", res.String()),
				logger.Int("index", i),
				logger.Error(err),
			)
			continue
		}
		if err := record.Validate(); err != nil {
			dropped++
			c.log.Debug("Dropping invalid record",
				logger.String("resource", res.String()),
				logger.Int("index", i),
				logger.Error(err),
			)
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		c.log.Warn("Dropped invalid records from fetched batch",
			logger.String("resource", res.String()),
			logger.Int("dropped", dropped),
			logger.Int("kept", len(records)),
		)
	}
	return records, nil
}
