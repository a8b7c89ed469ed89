package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/outlet/pkg/host"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the navigation host",
		Long: `Serve the route manifest to browsers.

Endpoints:
  GET /ws?uri=…       WebSocket navigation bridge
  GET /resolve?uri=…  resolve a URI
  GET /routes         registered routes
  GET /healthz        liveness
  GET /metrics        Prometheus metrics

Examples:
  outlet serve
  outlet serve --addr=127.0.0.1:8080
  outlet serve --routes s3://site-config/routes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := loadProject(ctx, opts)
			if err != nil {
				return err
			}
			if addr != "" {
				p.config.Server.Addr = addr
			}

			out := cmd.OutOrStdout()
			printBanner(out)
			info(out, "serve")
			info(out, "")
			success(out, "%d routes loaded from %s", p.routes.Len(), p.config.Routes)
			info(out, "listening on %s", p.config.Server.Addr)

			srv := host.New(p.routes, &host.Config{
				Addr:             p.config.Server.Addr,
				AllowedOrigins:   p.config.Server.AllowedOrigins,
				MetricsNamespace: p.config.Metrics.Namespace,
				DisableMetrics:   p.config.Metrics.Disabled,
				Tracer:           otel.Tracer(p.config.Tracing.TracerName),
				Logger:           p.logger,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, :3000)")

	return cmd
}
