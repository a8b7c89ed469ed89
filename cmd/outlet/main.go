package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬ ┬┌┬┐┬  ┌─┐┌┬┐
  ║ ║│ │ │ │  ├┤  │
  ╚═╝└─┘ ┴ ┴─┘└─┘ ┴
`

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	routes     string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.CodeOf(err) != "" {
			errors.PrintError(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "outlet",
		Short: "Path routing for single-page applications",
		Long: `Outlet maps browser locations to registered views.

It resolves URIs against a route manifest, extracts path
parameters, and drives navigation history. Features include:

  • Positional :param patterns with specificity ranking
  • YAML, JSON or S3 hosted route manifests
  • WebSocket bridge for browser navigation
  • Prometheus metrics and OpenTelemetry spans`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: outlet.json or outlet.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVarP(&opts.routes, "routes", "r", "", "Route manifest file or s3://bucket/key (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		initCmd(),
		resolveCmd(opts),
		routesCmd(opts),
		simulateCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the Outlet ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
