package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// RequestID is the id every tool call carries. Calls never overlap, so
// responses need no correlation beyond it.
const RequestID = 1

// Request is the JSON-RPC 2.0 envelope for a tools/call invocation.
// Field order is the wire order.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	ID      int    `json:"id"`
	Params  Params `json:"params"`
}

// Params names the tool and carries its arguments.
type Params struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the error member of a JSON-RPC response.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// NewRequest builds the tools/call envelope for tool. args must be JSON text.
func NewRequest(tool, args string) (*Request, error) {
	if strings.TrimSpace(tool) == "" {
		return nil, errors.New("missing tool name")
	}
	arguments, err := ParseArguments(args)
	if err != nil {
		return nil, err
	}
	return &Request{
		JSONRPC: mcp.JSONRPC_VERSION,
		Method:  string(mcp.MethodToolsCall),
		ID:      RequestID,
		Params: Params{
			Name:      tool,
			Arguments: arguments,
		},
	}, nil
}

// ParseArguments decodes args into a generic JSON value. Numbers stay
// json.Number so they re-encode exactly. Blank input means no arguments.
func ParseArguments(args string) (any, error) {
	if strings.TrimSpace(args) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(args))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid arguments: trailing data after JSON value")
	}
	return value, nil
}

// Encode marshals v as compact JSON without HTML escaping, so text such as
// "<x>" goes on the wire as typed.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
