// Package response turns tool call replies into console text.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lydakis/phase3ctl/internal/rpc"
	"github.com/mark3labs/mcp-go/mcp"
)

// Render formats a reply body for printing. With text false the body is
// returned verbatim. With text true a JSON-RPC reply is unwrapped; anything
// else still comes back verbatim.
func Render(body []byte, text bool) []byte {
	if !text {
		return body
	}

	var resp rpc.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return body
	}
	if resp.Error != nil {
		return []byte(resp.Error.Error())
	}
	if len(resp.Result) == 0 {
		return body
	}

	result, err := mcp.ParseCallToolResult(&resp.Result)
	if err != nil {
		return resp.Result
	}
	out, _ := Unwrap(result)
	return out
}

// Unwrap extracts printable output from an MCP CallToolResult and reports
// whether the tool flagged the result as an error.
func Unwrap(result *mcp.CallToolResult) ([]byte, bool) {
	if result == nil {
		return nil, false
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			return data, result.IsError
		}
	}

	var parts []string
	for _, content := range result.Content {
		if rendered, ok := renderContent(content); ok {
			parts = append(parts, rendered)
			continue
		}
		if raw, err := json.Marshal(content); err == nil {
			parts = append(parts, string(raw))
		}
	}

	out := strings.Join(parts, "\n")
	return bytes.TrimRight([]byte(out), "\n"), result.IsError
}

func renderContent(content mcp.Content) (string, bool) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, true
	case *mcp.TextContent:
		return c.Text, true
	case mcp.ImageContent:
		return describeBlob("image", c.MIMEType, c.Data), true
	case *mcp.ImageContent:
		return describeBlob("image", c.MIMEType, c.Data), true
	case mcp.AudioContent:
		return describeBlob("audio", c.MIMEType, c.Data), true
	case *mcp.AudioContent:
		return describeBlob("audio", c.MIMEType, c.Data), true
	case mcp.EmbeddedResource:
		return renderResource(c.Resource)
	case *mcp.EmbeddedResource:
		return renderResource(c.Resource)
	default:
		return "", false
	}
}

func renderResource(resource mcp.ResourceContents) (string, bool) {
	switch r := resource.(type) {
	case mcp.TextResourceContents:
		return r.Text, true
	case *mcp.TextResourceContents:
		return r.Text, true
	case mcp.BlobResourceContents:
		return describeBlob("resource "+r.URI, r.MIMEType, r.Blob), true
	case *mcp.BlobResourceContents:
		return describeBlob("resource "+r.URI, r.MIMEType, r.Blob), true
	default:
		return "", false
	}
}

// describeBlob stands in for binary payloads, which a text console cannot show.
func describeBlob(kind, mimeType, encoded string) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("[%s %s, %d base64 chars]", kind, mimeType, len(encoded))
}
