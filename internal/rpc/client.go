// Package rpc performs tool calls against the control panel's JSON-RPC
// endpoint. A Caller makes exactly one attempt per call.
package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lydakis/phase3ctl/internal/httpheaders"
)

// RequestIDHeader carries a per-call correlation id.
const RequestIDHeader = "X-Request-Id"

// Caller maps a tool name and JSON arguments to the server's reply.
type Caller interface {
	Call(ctx context.Context, tool, args string) ([]byte, error)
	Close() error
}

// Options tune a Caller. The zero value matches the bare control panel:
// no extra headers and no timeout.
type Options struct {
	Headers    map[string]string
	Timeout    time.Duration
	Logger     *slog.Logger
	HTTPClient *http.Client
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Client posts tools/call envelopes over plain HTTP.
type Client struct {
	endpoint   string
	headers    map[string]string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for endpoint.
func NewClient(endpoint string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   endpoint,
		headers:    httpheaders.Build(opts.Headers),
		timeout:    opts.Timeout,
		httpClient: httpClient,
		logger:     opts.logger(),
	}
}

// Call sends one tools/call request and returns the response body verbatim,
// whatever the HTTP status. Only transport failures are errors.
func (c *Client) Call(ctx context.Context, tool, args string) ([]byte, error) {
	req, err := NewRequest(tool, args)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpheaders.Apply(httpReq.Header, c.headers)
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	c.logger.DebugContext(ctx, "calling tool",
		slog.String("tool", tool),
		slog.String("endpoint", c.endpoint),
		slog.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "tool call failed",
			slog.String("tool", tool),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("calling %s: %w", tool, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", tool, err)
	}

	c.logger.DebugContext(ctx, "tool call finished",
		slog.String("tool", tool),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
