package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/manifest"
)

func routesCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Long: `List the routes of the manifest in registration order.

Formats:
  table  aligned columns (default)
  yaml   a manifest that can be loaded back
  json   a manifest that can be loaded back`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), opts)
			if err != nil {
				return err
			}
			m := manifest.FromCollection(p.routes)
			out := cmd.OutOrStdout()

			switch format {
			case "yaml":
				return m.Encode(out, manifest.FormatYAML)
			case "json":
				return m.Encode(out, manifest.FormatJSON)
			case "table", "":
			default:
				return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
			}

			width := len("PATTERN")
			for _, r := range m.Routes {
				width = max(width, len(r.Pattern))
			}
			fmt.Fprintf(out, "%-*s  %-9s  %s\n", width, "PATTERN", "PROTECTED", "TARGET")
			for _, r := range m.Routes {
				protected := "no"
				if r.Protected {
					protected = "yes"
				}
				fmt.Fprintf(out, "%-*s  %-9s  %s\n", width, r.Pattern, protected, r.Target)
			}
			fmt.Fprintln(out)
			info(out, "not found: %s, tie-break: %s", m.NotFound, m.TieBreak)
			if p.routes.Get(m.NotFound) == nil {
				warn(out, "no route registered for the not-found pattern %s", m.NotFound)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, yaml, json")

	return cmd
}
