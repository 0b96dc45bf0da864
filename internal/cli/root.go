package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lydakis/phase3ctl/internal/config"
	"github.com/lydakis/phase3ctl/internal/menu"
	"github.com/lydakis/phase3ctl/internal/rpc"
)

// Run is the networked control panel entry point. Returns an exit code.
func Run(args []string) int {
	return run(args, false)
}

// RunMock is the entry point of the mock variant. Returns an exit code.
func RunMock(args []string) int {
	return run(args, true)
}

func run(args []string, mock bool) int {
	opts, handled, code := handleRootFlags(args)
	if handled {
		return code
	}
	ctx := context.Background()

	if mock || opts.mock {
		printBanner(rootStdout, true)
		return runMenu(ctx, menu.Mock{})
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(rootStderr, "phase3ctl: %v\n", err)
		return ExitInternal
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(rootStderr, "phase3ctl: invalid config: %v\n", verr)
		return ExitUsageErr
	}

	logger := newLogger(rootStderr, cfg)
	caller := newCaller(cfg, logger)
	defer caller.Close()

	printBanner(rootStdout, false)
	return runMenu(ctx, menu.NewRemote(caller, cfg.IsTextOutput(), logger))
}

func runMenu(ctx context.Context, handler menu.Handler) int {
	if err := menu.New(rootStdin, rootStdout, handler).Run(ctx); err != nil {
		fmt.Fprintf(rootStderr, "phase3ctl: %v\n", err)
		return ExitInternal
	}
	return ExitOK
}

func newLogger(out io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

func newCaller(cfg *config.Config, logger *slog.Logger) rpc.Caller {
	opts := rpc.Options{
		Headers: cfg.Headers,
		Timeout: cfg.CallTimeout(),
		Logger:  logger,
	}
	if cfg.IsStreamable() {
		return rpc.NewStreamableClient(cfg.Endpoint, opts)
	}
	return rpc.NewClient(cfg.Endpoint, opts)
}

const bannerTitle = "Phase 3 C Frontend v1.0"

func printBanner(out io.Writer, mock bool) {
	if mock {
		fmt.Fprintln(out, bannerTitle+" (Test Mode)")
		fmt.Fprintln(out, "Note: This is a test version with mock responses")
		return
	}
	fmt.Fprintln(out, bannerTitle)
}
