package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lydakis/phase3ctl/internal/config"
)

var (
	rootStdin    io.Reader = os.Stdin
	rootStdout   io.Writer = os.Stdout
	rootStderr   io.Writer = os.Stderr
	buildVersion           = "dev"
)

func init() {
	buildVersion = resolveBuildVersion(buildVersion)
}

type rootOptions struct {
	mock bool
}

// handleRootFlags consumes global flags. When handled is true the process
// should exit with code without entering the menu.
func handleRootFlags(args []string) (opts rootOptions, handled bool, code int) {
	for _, arg := range args {
		switch arg {
		case "--version", "-V":
			fmt.Fprintf(rootStdout, "phase3ctl %s\n", buildVersion)
			return opts, true, ExitOK
		case "--help", "-h":
			printRootHelp(rootStdout)
			return opts, true, ExitOK
		case "--init-config":
			return opts, true, initConfig()
		case "--mock":
			opts.mock = true
		default:
			fmt.Fprintf(rootStderr, "phase3ctl: unknown flag: %s\n", arg)
			fmt.Fprintln(rootStderr, "Run 'phase3ctl --help' for usage.")
			return opts, true, ExitUsageErr
		}
	}
	return opts, false, ExitOK
}

func initConfig() int {
	path, written, err := config.Init()
	if err != nil {
		fmt.Fprintf(rootStderr, "phase3ctl: %v\n", err)
		return ExitInternal
	}
	if !written {
		fmt.Fprintf(rootStdout, "Config already exists at %s\n", path)
		return ExitOK
	}
	fmt.Fprintf(rootStdout, "Wrote default config to %s\n", path)
	return ExitOK
}

func resolveBuildVersion(defaultVersion string) string {
	if defaultVersion != "" && defaultVersion != "dev" {
		return defaultVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return defaultVersion
	}
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return defaultVersion
	}
	return info.Main.Version
}

func printRootHelp(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  phase3ctl [--mock]")
	fmt.Fprintln(out, "  phase3ctl-mock")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Interactive control panel for the Phase 3 tool server.")
	fmt.Fprintln(out, "Menu choices are read from standard input.")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Global flags:")
	fmt.Fprintln(out, "  --mock           Print canned responses instead of calling the server")
	fmt.Fprintln(out, "  --init-config    Write the default config file if none exists")
	fmt.Fprintln(out, "  --help, -h       Show help")
	fmt.Fprintln(out, "  --version, -V    Show version")
	fmt.Fprintln(out, "")
	fmt.Fprintf(out, "Config: %s (optional)\n", config.ExampleConfigPath())
}
