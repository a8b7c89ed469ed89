package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/config"
	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/manifest"
)

func initCmd() *cobra.Command {
	var (
		name   string
		asJSON bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a config file and an example route manifest",
		Long: `Create outlet.yaml and routes.yaml in dir (default: the working
directory). The manifest registers an index page, the not-found page
and one dynamic route.

Examples:
  outlet init
  outlet init site --name storefront
  outlet init --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, name, asJSON, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Application name (default: directory name)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write outlet.json and routes.json instead of YAML")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, asJSON, force bool) error {
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if config.Exists(dir) && !force {
		return errors.New("E142").
			WithDetail("A config file already exists in " + dir).
			WithSuggestion("Pass --force to overwrite it")
	}

	configName, routesName, format := config.YAMLConfigFileName, "routes.yaml", manifest.FormatYAML
	if asJSON {
		configName, routesName, format = config.ConfigFileName, "routes.json", manifest.FormatJSON
	}

	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	routesPath := filepath.Join(dir, routesName)
	f, err := os.Create(routesPath)
	if err != nil {
		return err
	}
	if err := manifest.FromCollection(manifest.BaseRoutes()).Encode(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	success(out, "Wrote %s", routesPath)

	cfg := config.New()
	cfg.Name = name
	cfg.Routes = routesName
	configPath := filepath.Join(dir, configName)
	if err := cfg.SaveTo(configPath); err != nil {
		return err
	}
	success(out, "Wrote %s", configPath)

	info(out, "")
	info(out, "Try: outlet resolve --config %s /dynamic/a/example/b", configPath)
	return nil
}
