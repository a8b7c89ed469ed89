package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/router"
)

// resolution is the JSON output of one resolved URI.
type resolution struct {
	URI   string                             `json:"uri"`
	State navigation.State                   `json:"state"`
	Data  navigation.RenderData[router.Meta] `json:"data"`
}

func resolveCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <uri>...",
		Short: "Resolve URIs against the route manifest",
		Long: `Resolve one or more URIs the way an initial page load would and
print the selected target, pattern and parameters.

Examples:
  outlet resolve /users/42
  outlet resolve --routes routes.yaml "/search?q=go&page=2"
  outlet resolve --json /a /b`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var results []resolution
			for _, uri := range args {
				ctrl := navigation.New(p.routes, nil, nil, navigation.WithLogger(p.logger))
				if err := ctrl.Mount(cmd.Context(), uri); err != nil {
					return err
				}
				results = append(results, resolution{URI: uri, State: ctrl.State(), Data: ctrl.RenderData()})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				printResolution(out, r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func printResolution(w io.Writer, r resolution) {
	mark := "\033[32m✓\033[0m"
	if r.State.Phase == navigation.PhaseNotFound {
		mark = "\033[33m⚠\033[0m"
	}
	fmt.Fprintf(w, "%s %s\n", mark, r.URI)
	fmt.Fprintf(w, "  Phase:     %s\n", r.State.Phase)
	fmt.Fprintf(w, "  Pattern:   %s\n", r.State.Pattern)
	fmt.Fprintf(w, "  Target:    %s\n", r.State.TargetID)
	if r.State.Protected {
		fmt.Fprintf(w, "  Protected: yes\n")
	}
	if len(r.State.Params) > 0 {
		fmt.Fprintf(w, "  Params:    %s\n", formatParams(r.State.Params))
	}
	if len(r.State.Query) > 0 {
		fmt.Fprintf(w, "  Query:     %s\n", r.State.Query.Encode())
	}
	if r.Data.Title != "" {
		fmt.Fprintf(w, "  Title:     %s\n", r.Data.Title)
	}
	fmt.Fprintf(w, "  Final URI: %s\n", r.State.FinalURI)
}

func formatParams(p router.Params) string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = strings.TrimPrefix(name, router.ParamMarker) + "=" + p[name]
	}
	return strings.Join(parts, " ")
}
