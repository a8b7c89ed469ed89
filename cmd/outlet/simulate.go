package main

import (
	"fmt"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

func simulateCmd(opts *globalOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "simulate <step>...",
		Short: "Replay a navigation session against in-memory history",
		Long: `Replay a browsing session step by step.

Each step is one of:
  /some/uri   follow a link (pushes history)
  back        press the back button
  forward     press the forward button

Steps are delivered through the same event topics a browser host
publishes on, so listener errors are logged rather than aborting.

Examples:
  outlet simulate /users/1 /users/2 back back forward
  outlet simulate --start /dashboard /settings back`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			history := navigation.NewMemoryHistory(start)
			renderer := navigation.RendererFunc[router.Meta](func(target string, data navigation.RenderData[router.Meta]) {
				line := "render " + target
				if len(data.Params) > 0 {
					line += " " + formatParams(data.Params)
				}
				info(out, "%s", line)
			})
			ctrl := navigation.New(p.routes, history, renderer, navigation.WithLogger(p.logger))

			bus := EventBus.New()
			if err := ctrl.Listen(bus); err != nil {
				return err
			}
			defer ctrl.Unmount()

			fmt.Fprintf(out, "load %s\n", start)
			if err := ctrl.Mount(cmd.Context(), start); err != nil {
				return err
			}

			for _, step := range args {
				switch step {
				case "back", "forward":
					move := history.Back
					if step == "forward" {
						move = history.Forward
					}
					url, ok := move()
					if !ok {
						warn(out, "%s: no history entry", step)
						continue
					}
					fmt.Fprintf(out, "%s → %s\n", step, url)
					path, query := routepath.SplitPathAndQuery(url)
					bus.Publish(navigation.TopicPopState, path, query)

				default:
					if !strings.HasPrefix(step, "/") {
						return fmt.Errorf("unknown step %q (want a /uri, back or forward)", step)
					}
					fmt.Fprintf(out, "go %s\n", step)
					bus.Publish(navigation.TopicNavigate, step)
				}
			}

			fmt.Fprintln(out)
			success(out, "%d history entries, at %s", history.Len(), history.Current().URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "/", "URI of the initial page load")

	return cmd
}
