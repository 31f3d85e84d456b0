// Package disco is the HTTP client for the disco discovery server.
package disco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/emergence/internal/decode"
	"github.com/jonathan/emergence/internal/types"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the per-query id also attached to log lines.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a non-2xx body is kept for the error message.
const maxErrorBody = 4 << 10

// Options configures the client.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// DefaultOptions returns options with no timeout and a disabled logger.
func DefaultOptions() *Options {
	return &Options{Logger: zerolog.Nop()}
}

// Client sends queries to POST {disco_url}/query.
type Client struct {
	queryURL   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client posting to queryURL, normally
// config.EffectiveConfig.QueryURL.
func NewClient(queryURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Client{
		queryURL:   queryURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        opts.Logger,
	}
}

// Query sends text as a JSON-quoted string and decodes the response inline.
func (c *Client) Query(ctx context.Context, text string) (decode.Result, error) {
	payload, err := json.Marshal(text)
	if err != nil {
		return decode.Result{}, fmt.Errorf("marshal query: %w", err)
	}

	resp, reqID, err := c.post(ctx, payload)
	if err != nil {
		return decode.Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decode.Result{}, &TransportError{URL: c.queryURL, Cause: fmt.Errorf("read response: %w", err)}
	}
	if err := c.checkStatus(resp, body); err != nil {
		return decode.Result{}, err
	}

	res := decode.Decode(body)
	c.log.Debug().
		Str("request_id", reqID).
		Stringer("kind", res.Kind).
		Int("records", len(res.Records)).
		Msg("query.decoded")
	return res, nil
}

// Submit sends an async query carrying emboxURL and returns once disco has
// accepted it. The response body is discarded; results arrive at embox.
func (c *Client) Submit(ctx context.Context, text, emboxURL string) error {
	payload, err := json.Marshal(types.QueryRequest{EmboxURL: emboxURL, Query: text})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	resp, reqID, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.checkStatus(resp, body)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.Debug().Str("request_id", reqID).Str("embox_url", emboxURL).Msg("query.submitted")
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*http.Response, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("create query request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("request_id", reqID).Str("url", c.queryURL).Msg("query.send_failed")
		return nil, reqID, &TransportError{URL: c.queryURL, Cause: err}
	}

	c.log.Info().
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("query.sent")
	return resp, reqID, nil
}

func (c *Client) checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &StatusError{URL: c.queryURL, StatusCode: resp.StatusCode, Body: string(body)}
}
