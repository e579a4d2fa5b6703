// Package practicum talks to the homework review API: it fetches the raw
// status document, validates its shape and translates the newest homework
// into a notification message.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultEndpoint is the public homework status endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// maxBodySize caps how much of a response body is read. Larger bodies fail
// with ErrResponseTooLarge.
const maxBodySize = 32 << 20

// Client fetches homework statuses for a single OAuth token.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	maxBody    int64
	logger     *slog.Logger
}

// NewClient creates a status API client. A zero timeout leaves the request
// bounded only by the caller's context.
func NewClient(endpoint, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodySize,
		logger:     logger.With("component", "practicum_client"),
	}
}

// Fetch queries homework statuses changed since cursor (unix seconds) and
// returns the decoded JSON body. Numbers are decoded as json.Number.
//
// Non-200 answers yield *APIError, network failures yield *TransportError
// and an undecodable 200 body yields an error wrapping ErrMalformedResponse.
// A body over the size cap yields ErrResponseTooLarge.
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid status endpoint %q: %w", c.endpoint, err)
	}
	q := reqURL.Query()
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Requesting homework statuses", "from_date", cursor)
	startTime := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.logger.DebugContext(ctx, "Received status response",
		"status_code", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(startTime))

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: c.endpoint}
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON body: %v", ErrMalformedResponse, err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON body", ErrMalformedResponse)
	}
	return payload, nil
}
