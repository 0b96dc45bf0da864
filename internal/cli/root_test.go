package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type rootIO struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func swapRootIO(t *testing.T, input string) *rootIO {
	t.Helper()
	oldIn, oldOut, oldErr := rootStdin, rootStdout, rootStderr
	t.Cleanup(func() {
		rootStdin, rootStdout, rootStderr = oldIn, oldOut, oldErr
	})

	streams := &rootIO{}
	rootStdin = strings.NewReader(input)
	rootStdout = &streams.out
	rootStderr = &streams.errOut
	return streams
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	xdgConfigHome := filepath.Join(t.TempDir(), "xdg-config")
	configDir := filepath.Join(xdgConfigHome, "phase3ctl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("MkdirAll(configDir): %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile(config.toml): %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", xdgConfigHome)
}

func TestHandleRootFlagsVersion(t *testing.T) {
	oldVersion := buildVersion
	defer func() { buildVersion = oldVersion }()
	buildVersion = "1.2.3"
	streams := swapRootIO(t, "")

	_, handled, code := handleRootFlags([]string{"--version"})
	if !handled {
		t.Fatal("handled = false, want true")
	}
	if code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	if streams.out.String() != "phase3ctl 1.2.3\n" {
		t.Fatalf("output = %q, want %q", streams.out.String(), "phase3ctl 1.2.3\n")
	}
}

func TestHandleRootFlagsHelp(t *testing.T) {
	streams := swapRootIO(t, "")

	_, handled, code := handleRootFlags([]string{"-h"})
	if !handled || code != ExitOK {
		t.Fatalf("handleRootFlags(-h) = (%v, %d), want (true, 0)", handled, code)
	}
	if !strings.Contains(streams.out.String(), "--mock") {
		t.Fatalf("help output missing --mock: %q", streams.out.String())
	}
}

func TestHandleRootFlagsMockIsNotTerminal(t *testing.T) {
	opts, handled, _ := handleRootFlags([]string{"--mock"})
	if handled {
		t.Fatal("handled = true, want false")
	}
	if !opts.mock {
		t.Fatal("mock = false, want true")
	}
}

func TestHandleRootFlagsRejectsUnknownFlag(t *testing.T) {
	streams := swapRootIO(t, "")

	_, handled, code := handleRootFlags([]string{"--port=9000"})
	if !handled || code != ExitUsageErr {
		t.Fatalf("handleRootFlags(--port) = (%v, %d), want (true, %d)", handled, code, ExitUsageErr)
	}
	if !strings.Contains(streams.errOut.String(), "unknown flag: --port=9000") {
		t.Fatalf("stderr = %q, want unknown flag message", streams.errOut.String())
	}
}

func TestResolveBuildVersionHonorsInjectedValue(t *testing.T) {
	if got := resolveBuildVersion("1.2.3"); got != "1.2.3" {
		t.Fatalf("resolveBuildVersion(injected) = %q, want %q", got, "1.2.3")
	}
}

func TestRunInitConfigWritesDefaults(t *testing.T) {
	xdgConfigHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgConfigHome)
	streams := swapRootIO(t, "")

	if code := Run([]string{"--init-config"}); code != ExitOK {
		t.Fatalf("Run(--init-config) = %d, want %d (stderr=%q)", code, ExitOK, streams.errOut.String())
	}
	data, err := os.ReadFile(filepath.Join(xdgConfigHome, "phase3ctl", "config.toml"))
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if !bytes.Contains(data, []byte(`endpoint = "http://localhost:8080/mcp"`)) {
		t.Fatalf("config = %s, want default endpoint", data)
	}
}

func TestRunMockNeverNeedsConfigOrNetwork(t *testing.T) {
	writeConfig(t, "this is = not valid toml [")
	streams := swapRootIO(t, "5\n8\n")

	if code := RunMock(nil); code != ExitOK {
		t.Fatalf("RunMock() = %d, want %d (stderr=%q)", code, ExitOK, streams.errOut.String())
	}
	out := streams.out.String()
	if !strings.Contains(out, "Phase 3 C Frontend v1.0 (Test Mode)\nNote: This is a test version with mock responses\n") {
		t.Fatalf("output missing mock banner:\n%s", out)
	}
	if !strings.Contains(out, "Config: {\n  \"model\": \"gpt-4\",\n  \"temperature\": 0.7,\n  \"max_tokens\": 1000\n}\n") {
		t.Fatalf("output missing agent config block:\n%s", out)
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Fatalf("output does not end with Goodbye:\n%s", out)
	}
}

func TestRunMockFlagSelectsMockVariant(t *testing.T) {
	streams := swapRootIO(t, "3\n8\n")

	if code := Run([]string{"--mock"}); code != ExitOK {
		t.Fatalf("Run(--mock) = %d, want %d", code, ExitOK)
	}
	if !strings.Contains(streams.out.String(), "Frontend: Started on port 8080\n") {
		t.Fatalf("output missing mock frontend reply:\n%s", streams.out.String())
	}
}

func TestRunPostsStatusRequestAndPrintsRawReply(t *testing.T) {
	reply := `{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"healthy"}]}}`
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, r.URL.Path+" "+string(body))
		mu.Unlock()
		io.WriteString(w, reply) //nolint:errcheck
	}))
	defer srv.Close()

	writeConfig(t, "endpoint = \""+srv.URL+"/mcp\"\n")
	streams := swapRootIO(t, "2\n8\n")

	if code := Run(nil); code != ExitOK {
		t.Fatalf("Run() = %d, want %d (stderr=%q)", code, ExitOK, streams.errOut.String())
	}

	mu.Lock()
	defer mu.Unlock()
	want := `/mcp {"jsonrpc":"2.0","method":"tools/call","id":1,"params":{"name":"get_status","arguments":{}}}`
	if len(bodies) != 1 || bodies[0] != want {
		t.Fatalf("requests = %q, want [%q]", bodies, want)
	}
	if !strings.HasPrefix(streams.out.String(), "Phase 3 C Frontend v1.0\n\n=== Phase 3 Control Panel ===\n") {
		t.Fatalf("output missing banner:\n%s", streams.out.String())
	}
	if !strings.Contains(streams.out.String(), "Status: "+reply+"\n") {
		t.Fatalf("output missing raw reply:\n%s", streams.out.String())
	}
}

func TestRunUnreachableEndpointReportsAndContinues(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	writeConfig(t, "endpoint = \""+url+"/mcp\"\nlog_level = \"error\"\n")
	streams := swapRootIO(t, "2\n6\n8\n")

	if code := Run(nil); code != ExitOK {
		t.Fatalf("Run() = %d, want %d", code, ExitOK)
	}
	out := streams.out.String()
	if !strings.Contains(out, "Error getting status\n") {
		t.Fatalf("output missing status failure:\n%s", out)
	}
	if !strings.Contains(out, "Error getting database status\n") {
		t.Fatalf("output missing database failure:\n%s", out)
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Fatalf("output does not end with Goodbye:\n%s", out)
	}
	if !strings.Contains(streams.errOut.String(), "tool=get_status") {
		t.Fatalf("stderr missing failure log: %q", streams.errOut.String())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	writeConfig(t, "transport = \"carrier-pigeon\"\n")
	streams := swapRootIO(t, "8\n")

	if code := Run(nil); code != ExitUsageErr {
		t.Fatalf("Run() = %d, want %d", code, ExitUsageErr)
	}
	if !strings.Contains(streams.errOut.String(), "invalid config") {
		t.Fatalf("stderr = %q, want invalid config message", streams.errOut.String())
	}
}

func TestRunStreamableTransportWithTextOutput(t *testing.T) {
	mcpServer := server.NewMCPServer("phase3-admin", "1.0.0")
	mcpServer.AddTool(mcp.NewTool("generate",
		mcp.WithString("prompt", mcp.Required()),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("Generated: " + request.GetString("prompt", "") + "..."), nil
	})
	httpServer := server.NewTestStreamableHTTPServer(mcpServer)
	defer httpServer.Close()

	writeConfig(t, "endpoint = \""+httpServer.URL+"\"\ntransport = \"streamable\"\noutput = \"text\"\ntimeout = \"10s\"\n")
	streams := swapRootIO(t, "1\nhello\n8\n")

	if code := Run(nil); code != ExitOK {
		t.Fatalf("Run() = %d, want %d (stderr=%q)", code, ExitOK, streams.errOut.String())
	}
	if !strings.Contains(streams.out.String(), "Result: Generated: hello...\n") {
		t.Fatalf("output missing generated text:\n%s", streams.out.String())
	}
}
