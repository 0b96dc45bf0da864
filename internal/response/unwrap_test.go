package response

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestRenderRawReturnsBodyVerbatim(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"ok"}]}}`)
	if got := Render(body, false); string(got) != string(body) {
		t.Fatalf("Render(raw) = %q, want %q", got, body)
	}
}

func TestRenderTextUnwrapsTextContent(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"Generated: hello..."}]}}`)
	if got := string(Render(body, true)); got != "Generated: hello..." {
		t.Fatalf("Render(text) = %q, want %q", got, "Generated: hello...")
	}
}

func TestRenderTextFormatsRPCError(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`)
	if got, want := string(Render(body, true)), "error -32601: Method not found"; got != want {
		t.Fatalf("Render(text) = %q, want %q", got, want)
	}
}

func TestRenderTextFallsBackToRawForNonJSON(t *testing.T) {
	body := []byte("502 Bad Gateway")
	if got := string(Render(body, true)); got != "502 Bad Gateway" {
		t.Fatalf("Render(text) = %q, want raw body", got)
	}
}

func TestRenderTextFallsBackToRawWithoutResult(t *testing.T) {
	body := []byte(`{"status":"healthy"}`)
	if got := string(Render(body, true)); got != string(body) {
		t.Fatalf("Render(text) = %q, want raw body", got)
	}
}

func TestUnwrapPrefersStructuredContent(t *testing.T) {
	result := &mcp.CallToolResult{
		StructuredContent: map[string]any{"sessions": 3},
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: "ignored"},
		},
	}

	out, isErr := Unwrap(result)
	if isErr {
		t.Fatal("isErr = true, want false")
	}
	if string(out) != `{"sessions":3}` {
		t.Fatalf("Unwrap output = %q, want %q", out, `{"sessions":3}`)
	}
}

func TestUnwrapMultipleTextBlocksAreNewlineSeparated(t *testing.T) {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: "alpha\n"},
			mcp.TextContent{Type: "text", Text: "beta\n"},
		},
	}

	out, _ := Unwrap(result)
	if string(out) != "alpha\n\nbeta" {
		t.Fatalf("Unwrap output = %q, want %q", out, "alpha\n\nbeta")
	}
}

func TestUnwrapDescribesImageContent(t *testing.T) {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{Type: "image", Data: "aGVsbG8=", MIMEType: "image/png"},
		},
	}

	out, _ := Unwrap(result)
	if got, want := string(out), "[image image/png, 8 base64 chars]"; got != want {
		t.Fatalf("Unwrap output = %q, want %q", got, want)
	}
}

func TestUnwrapReportsToolError(t *testing.T) {
	result := &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: "Unknown tool: nope"},
		},
	}

	out, isErr := Unwrap(result)
	if !isErr {
		t.Fatal("isErr = false, want true")
	}
	if string(out) != "Unknown tool: nope" {
		t.Fatalf("Unwrap output = %q, want %q", out, "Unknown tool: nope")
	}
}
