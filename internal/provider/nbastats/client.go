// Package nbastats provides the HTTP client for the stats.nba.com endpoints
// used by the report pipeline.
//
// Every endpoint answers with one or more "result sets": a named table made of
// a header list and positional rows. Rows are decoded generically and looked
// up by header name, so a column the endpoint stops sending surfaces as
// "unavailable" instead of a decode failure.
// Rate limiting is handled via a token bucket limiter; there are no retries.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/bballscorer/internal/provider"
)

// Observer receives one callback per upstream request. It lets callers
// instrument the client without this package importing a metrics backend.
type Observer interface {
	ObserveUpstream(endpoint string, err error, elapsed time.Duration)
}

// Client is the shared HTTP client for all stats endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
	observer   Observer
}

// Option configures optional Client behaviour.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver attaches a request observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a stats client with rate limiting.
func NewClient(baseURL string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	rps := float64(requestsPerMinute) / 60.0
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resultSet is one table of a stats response.
type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// statsResponse is the common stats.nba.com response wrapper. A few endpoints
// use the singular "resultSet" key instead of "resultSets".
type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
	ResultSet  *resultSet  `json:"resultSet"`
}

// table returns the result set with the given name, or the first one when
// name is empty.
func (r *statsResponse) table(name string) (*table, bool) {
	sets := r.ResultSets
	if r.ResultSet != nil {
		sets = append(sets, *r.ResultSet)
	}
	for i := range sets {
		if name == "" || strings.EqualFold(sets[i].Name, name) {
			return newTable(&sets[i]), true
		}
	}
	return nil, false
}

// get performs a rate-limited GET request to a stats endpoint. Any failure is
// reported as a *provider.RetrievalError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (resp *statsResponse, err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstream(endpoint, err, time.Since(start))
		}
		if err != nil {
			err = &provider.RetrievalError{Endpoint: endpoint, Err: err}
		}
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	c.logger.Debug("stats request", "endpoint", endpoint, "params", params.Encode())

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", endpoint, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats %s returned %d: %s", endpoint, httpResp.StatusCode, truncate(body, 200))
	}

	var result statsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.ResultSets) == 0 && result.ResultSet == nil {
		return nil, fmt.Errorf("response has no result sets")
	}

	return &result, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}

// --------------------------------------------------------------------------
// Header-indexed rows
// --------------------------------------------------------------------------

type table struct {
	index map[string]int
	rows  [][]interface{}
}

func newTable(rs *resultSet) *table {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[strings.ToUpper(h)] = i
	}
	return &table{index: idx, rows: rs.RowSet}
}

// has reports whether the table carries any of the named columns.
func (t *table) has(cols ...string) bool {
	for _, c := range cols {
		if _, ok := t.index[strings.ToUpper(c)]; ok {
			return true
		}
	}
	return false
}

type row struct {
	t     *table
	cells []interface{}
}

func (t *table) each(fn func(row)) {
	for _, cells := range t.rows {
		fn(row{t: t, cells: cells})
	}
}

// cell returns the raw value of the first named column present.
func (r row) cell(cols ...string) (interface{}, bool) {
	for _, c := range cols {
		i, ok := r.t.index[strings.ToUpper(c)]
		if !ok || i >= len(r.cells) {
			continue
		}
		return r.cells[i], true
	}
	return nil, false
}

func (r row) float(cols ...string) (float64, bool) {
	v, ok := r.cell(cols...)
	if !ok {
		return 0, false
	}
	return provider.ExtractValue(v)
}

func (r row) str(cols ...string) string {
	v, ok := r.cell(cols...)
	if !ok {
		return ""
	}
	s, _ := provider.ExtractString(v)
	return s
}

func (r row) integer(cols ...string) int {
	f, _ := r.float(cols...)
	return int(f)
}

// stats copies every box-score column present in the row.
func (r row) stats() map[provider.Column]float64 {
	out := make(map[provider.Column]float64, len(provider.BoxColumns))
	for _, col := range provider.BoxColumns {
		if v, ok := r.float(string(col)); ok {
			out[col] = v
		}
	}
	return out
}
