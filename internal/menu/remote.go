package menu

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lydakis/phase3ctl/internal/response"
	"github.com/lydakis/phase3ctl/internal/rpc"
)

// Remote performs actions by calling tools through an rpc.Caller.
type Remote struct {
	caller rpc.Caller
	text   bool
	logger *slog.Logger
}

// NewRemote creates a Remote. With text true, JSON-RPC replies are unwrapped
// before printing; otherwise the reply body is printed as received.
func NewRemote(caller rpc.Caller, text bool, logger *slog.Logger) *Remote {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Remote{caller: caller, text: text, logger: logger}
}

// Handle prints "<prefix>: <reply>" on success and the action's failure
// message otherwise.
func (r *Remote) Handle(ctx context.Context, a Action, v Value, out io.Writer) {
	args, err := a.Arguments(v)
	if err != nil {
		r.fail(ctx, a, err, out)
		return
	}

	body, err := r.caller.Call(ctx, a.Tool, args)
	if err != nil {
		r.fail(ctx, a, err, out)
		return
	}
	fmt.Fprintf(out, "%s: %s\n", a.ResultPrefix, response.Render(body, r.text))
}

func (r *Remote) fail(ctx context.Context, a Action, err error, out io.Writer) {
	r.logger.ErrorContext(ctx, a.FailureMessage, slog.String("tool", a.Tool), slog.String("error", err.Error()))
	fmt.Fprintln(out, a.FailureMessage)
}
