package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/vango-dev/outlet/internal/config"
	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/manifest"
	"github.com/vango-dev/outlet/pkg/router"
)

// project is the loaded configuration and route collection.
type project struct {
	config *config.Config
	routes *router.Collection[router.Meta]
	logger *slog.Logger
}

// loadConfig reads --config, else the config file of the project enclosing
// the working directory, else defaults.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.CodeOf(err) == "E141" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.routes != "" {
		cfg.Routes = opts.routes
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadProject loads the configuration and builds the route collection.
func loadProject(ctx context.Context, opts *globalOptions) (*project, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel())

	source := cfg.RoutesSource()
	if source == "" {
		return nil, errors.New("E300").
			WithSuggestion("Run 'outlet init' to create outlet.yaml and routes.yaml")
	}

	var client manifest.GetObjectAPI
	if strings.HasPrefix(source, manifest.S3Scheme) {
		s3Client, err := manifest.NewS3Client(ctx, manifest.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		client = s3Client
	}

	m, err := manifest.Load(ctx, source, client)
	if err != nil {
		return nil, err
	}
	routes, err := m.Build(
		router.WithNotFoundPattern(cfg.NotFound),
		router.WithTieBreak(cfg.TieBreakPolicy()),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("routes loaded", "source", source, "routes", routes.Len())
	return &project{config: cfg, routes: routes, logger: logger}, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
