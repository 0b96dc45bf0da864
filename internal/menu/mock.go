package menu

import (
	"context"
	"fmt"
	"io"
)

// Mock answers every action with canned output and never touches the network.
type Mock struct{}

// Handle prints the canned reply for a.
func (Mock) Handle(_ context.Context, a Action, v Value, out io.Writer) {
	switch a.Tool {
	case "generate":
		fmt.Fprintf(out, "Generated: Mock text for '%s'\n", v.Text)
	case "set_debug":
		fmt.Fprintf(out, "Debug: Level set to %d\n", v.Level)
	default:
		if reply, ok := mockReplies[a.Tool]; ok {
			fmt.Fprint(out, reply)
			return
		}
		fmt.Fprintf(out, "%s: no mock response\n", a.ResultPrefix)
	}
}

var mockReplies = map[string]string{
	"get_status": `Status: {
  "status": "healthy",
  "server": "phase3-admin",
  "version": "1.0.0",
  "frontend_running": true
}
`,
	"start_frontend": "Frontend: Started on port 8080\n",
	"get_agent_config": `Config: {
  "model": "gpt-4",
  "temperature": 0.7,
  "max_tokens": 1000
}
`,
	"db_status": `Database: {
  "connected": true,
  "sessions": 0,
  "settings": 3
}
`,
	"get_settings": `Settings: {
  "debug_level": 1,
  "frontend_port": 8080,
  "agent_model": "gpt-4"
}
`,
}
