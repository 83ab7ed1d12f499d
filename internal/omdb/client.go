// Package omdb is the client for the OMDb movie API (https://www.omdbapi.com).
//
// Provider JSON is decoded into private schema structs and mapped into
// internal/model exactly once, here. Callers only ever see model types and the
// sentinel errors in errors.go.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/popcorn/internal/model"
)

// DefaultEndpoint is the public OMDb API base URL.
const DefaultEndpoint = "https://www.omdbapi.com/"

const (
	defaultTimeout  = 15 * time.Second
	defaultInterval = 300 * time.Millisecond
)

// Client queries OMDb. Safe for concurrent use.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Client. Zero timeout and interval select the defaults.
//
// interval paces requests: each call waits for a limiter slot before it goes
// out, and a call whose context is cancelled while waiting never reaches the
// network. Rapid query changes therefore collapse into the last one.
func NewClient(apiKey, endpoint string, timeout, interval time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Available returns true if an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Search returns the movies matching query, in provider order.
func (c *Client) Search(ctx context.Context, query string) ([]model.Movie, error) {
	var body searchResponse
	if err := c.get(ctx, url.Values{"s": {query}}, &body); err != nil {
		return nil, err
	}
	if body.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, body.Error)
	}

	movies := make([]model.Movie, 0, len(body.Search))
	for _, hit := range body.Search {
		movies = append(movies, hit.toModel())
	}
	return movies, nil
}

// Detail returns the full record for the movie with the given IMDb ID.
func (c *Client) Detail(ctx context.Context, id string) (model.MovieDetail, error) {
	var body detailResponse
	if err := c.get(ctx, url.Values{"i": {id}}, &body); err != nil {
		return model.MovieDetail{}, err
	}
	if body.Response == "False" {
		return model.MovieDetail{}, fmt.Errorf("%w: %s", ErrNotFound, body.Error)
	}

	d := body.toModel()
	if d.ID == "" {
		d.ID = id
	}
	return d, nil
}

// get performs one paced GET with the API key and params, decoding the JSON
// body into out.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if ctx.Err() != nil {
		return cancelled(ctx)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx)
		}
		return fmt.Errorf("omdb: wait for request slot: %w", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("omdb: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("omdb: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "popcorn/0.1")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx)
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx)
		}
		return fmt.Errorf("omdb: decode response: %w", err)
	}
	return nil
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
}
