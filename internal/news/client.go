package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// RequestError reports a non-2xx response from the feed endpoint.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Query holds the optional query parameters of a feed request.
type Query struct {
	Limit int
}

// Encode returns the URL-encoded parameters, or "" when none are set.
func (q Query) Encode() string {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params.Encode()
}

// Client fetches items from a feed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a Client for the given endpoint. A zero timeout means
// requests never time out on their own.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP returns a Client that issues requests through hc.
func NewClientWithHTTP(endpoint string, hc *http.Client) *Client {
	return &Client{endpoint: endpoint, http: hc}
}

// Endpoint returns the configured base endpoint.
func (c *Client) Endpoint() string { return c.endpoint }

// URL returns the request URL for q.
func (c *Client) URL(q Query) string {
	if params := q.Encode(); params != "" {
		return c.endpoint + "?" + params
	}
	return c.endpoint
}

// Fetch issues one GET against the endpoint. A body that is valid JSON but
// not an array yields no items and no error.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return DecodeItems(body)
}

// DecodeItems parses a feed body. Malformed JSON is an error; any valid
// non-array document decodes to nil. A null element is an error since it
// cannot be rendered as a card.
func DecodeItems(body []byte) ([]Item, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	items := make([]Item, len(elems))
	for i, elem := range elems {
		if string(bytes.TrimSpace(elem)) == "null" {
			return nil, fmt.Errorf("item %d is null", i)
		}
		if err := json.Unmarshal(elem, &items[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}
