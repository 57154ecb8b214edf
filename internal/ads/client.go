// Package ads talks to the ADS "bigquery" search endpoint to find out
// which bibcodes ADS already carries, so they are not resubmitted.
package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Endpoint of the ADS bigquery API.
	Endpoint = "https://api.adsabs.harvard.edu/v1/search/bigquery"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit per ADS API documentation.
	RateLimit = 5.0

	// MaxRows is the row count requested per query.
	MaxRows = 1000
)

// Client is a rate-limited HTTP client for the ADS bigquery endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	endpoint   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint sets a custom endpoint URL (for testing).
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates an ADS client using the given access token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		token:      token,
		endpoint:   Endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// bigqueryResponse is the subset of the ADS response we consume.
type bigqueryResponse struct {
	ResponseHeader struct {
		Status int `json:"status"`
	} `json:"responseHeader"`
	Response struct {
		Docs []struct {
			Bibcode string `json:"bibcode"`
		} `json:"docs"`
	} `json:"response"`
}

// FilterUnpublished returns the bibcodes from the given list that ADS
// does not know yet, preserving order.
func (c *Client) FilterUnpublished(ctx context.Context, bibcodes []string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"q":    {"*:*"},
		"rows": {fmt.Sprintf("%d", MaxRows)},
		"wt":   {"json"},
		"fq":   {"{!bitset}"},
		"fl":   {"bibcode"},
	}
	payload := "bibcode\n" + strings.Join(bibcodes, "\n")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?"+params.Encode(), strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building ADS request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer:"+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying ADS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, &ExternalError{StatusCode: resp.StatusCode, Message: "HTTP error"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading ADS response: %w", err)
	}
	var parsed bigqueryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ExternalError{Message: fmt.Sprintf("unparseable response: %v", err)}
	}
	if parsed.ResponseHeader.Status != 0 {
		return nil, &ExternalError{Message: fmt.Sprintf(
			"response status %d", parsed.ResponseHeader.Status)}
	}

	known := make(map[string]bool, len(parsed.Response.Docs))
	for _, doc := range parsed.Response.Docs {
		known[doc.Bibcode] = true
	}
	var unpublished []string
	for _, bibcode := range bibcodes {
		if !known[bibcode] {
			unpublished = append(unpublished, bibcode)
		}
	}
	return unpublished, nil
}
