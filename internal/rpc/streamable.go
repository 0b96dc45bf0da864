package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClientName and ClientVersion identify phase3ctl during MCP initialization.
const (
	ClientName    = "phase3ctl"
	ClientVersion = "1.0.0"
)

// StreamableClient calls tools over the MCP streamable HTTP transport.
// It connects on first use and keeps the session until a call fails.
// Not safe for concurrent use.
type StreamableClient struct {
	endpoint string
	headers  map[string]string
	timeout  time.Duration
	logger   *slog.Logger

	conn *mcpclient.Client
}

// NewStreamableClient creates a StreamableClient for endpoint.
func NewStreamableClient(endpoint string, opts Options) *StreamableClient {
	return &StreamableClient{
		endpoint: endpoint,
		headers:  opts.Headers,
		timeout:  opts.Timeout,
		logger:   opts.logger(),
	}
}

func (s *StreamableClient) connect(ctx context.Context) (*mcpclient.Client, error) {
	if s.conn != nil {
		return s.conn, nil
	}

	var opts []transport.StreamableHTTPCOption
	if len(s.headers) > 0 {
		opts = append(opts, transport.WithHTTPHeaders(s.headers))
	}

	c, err := mcpclient.NewStreamableHttpClient(s.endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("starting HTTP client: %w", err)
	}

	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo: mcp.Implementation{
				Name:    ClientName,
				Version: ClientVersion,
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}); err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing: %w", err)
	}

	s.logger.DebugContext(ctx, "mcp session established", slog.String("endpoint", s.endpoint))
	s.conn = c
	return c, nil
}

func (s *StreamableClient) invalidate() {
	if s.conn == nil {
		return
	}
	s.conn.Close() //nolint: errcheck
	s.conn = nil
}

// Call invokes tool and returns the result wrapped in a JSON-RPC response
// envelope, so callers see the same shape as a plain HTTP reply.
func (s *StreamableClient) Call(ctx context.Context, tool, args string) ([]byte, error) {
	arguments, err := ParseArguments(args)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	c, err := s.connect(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "mcp connect failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("connecting to %s: %w", s.endpoint, err)
	}

	result, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: arguments,
		},
	})
	if err != nil {
		s.invalidate()
		s.logger.WarnContext(ctx, "tool call failed", slog.String("tool", tool), slog.String("error", err.Error()))
		return nil, fmt.Errorf("calling %s: %w", tool, err)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", tool, err)
	}
	return json.Marshal(Response{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      json.RawMessage(strconv.Itoa(RequestID)),
		Result:  raw,
	})
}

// Close ends the MCP session, if any.
func (s *StreamableClient) Close() error {
	s.invalidate()
	return nil
}
