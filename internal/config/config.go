package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/router"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "outlet.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "outlet.yaml"

	// DefaultAddr is the default host listen address.
	DefaultAddr = ":3000"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "outlet"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "outlet"

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"
)

// Config represents the complete outlet configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Routes is the route manifest source: a file path relative to the
	// config file or an s3://bucket/key URI.
	Routes string `json:"routes,omitempty" yaml:"routes,omitempty"`

	// NotFound is the not-found pattern. A manifest may override it.
	NotFound string `json:"notFound,omitempty" yaml:"notFound,omitempty"`

	// TieBreak is the tie-break policy name. A manifest may override it.
	TieBreak string `json:"tieBreak,omitempty" yaml:"tieBreak,omitempty"`

	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
	S3      S3Config      `json:"s3,omitempty" yaml:"s3,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains host server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// AllowedOrigins lists WebSocket origins accepted besides same-origin.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Disabled turns off the /metrics endpoint and navigation metrics.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName names the tracer obtained from the global provider.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// S3Config contains settings for manifests stored in S3.
type S3Config struct {
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint points at an S3 compatible store.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle addresses buckets as path segments.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		NotFound: router.DefaultNotFoundPattern,
		TieBreak: router.TieBreakSpecificity.String(),
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for outlet.json, then outlet.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No outlet.json or outlet.yaml found in " + dir).
		WithSuggestion("Run 'outlet init' to create one")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are read as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No config file at " + path).
				WithSuggestion("Run 'outlet init' to create one or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in YAML or JSON
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in zero values left by a partial file.
func (c *Config) applyDefaults() {
	if c.NotFound == "" {
		c.NotFound = router.DefaultNotFoundPattern
	}
	if c.TieBreak == "" {
		c.TieBreak = router.TieBreakSpecificity.String()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := router.ParseTieBreak(c.TieBreak); !ok {
		return errors.New("E122").
			WithDetail("tieBreak must be \"specificity\" or \"last-registered\", got " + c.TieBreak)
	}
	if c.NotFound != "" && !strings.HasPrefix(c.NotFound, "/") {
		return errors.New("E122").
			WithDetail("notFound must start with '/', got " + c.NotFound)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error, got " + c.Log.Level)
	}
	return nil
}

// TieBreakPolicy returns the parsed tie-break policy.
func (c *Config) TieBreakPolicy() router.TieBreak {
	tb, _ := router.ParseTieBreak(c.TieBreak)
	return tb
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	lvl, _ := parseLevel(c.Log.Level)
	return lvl
}

// RoutesSource returns the manifest source. Relative file paths are
// resolved against the config directory; S3 URIs are returned unchanged.
func (c *Config) RoutesSource() string {
	if c.Routes == "" || strings.HasPrefix(c.Routes, "s3://") || filepath.IsAbs(c.Routes) {
		return c.Routes
	}
	return filepath.Join(c.Dir(), c.Routes)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing the config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No outlet.json or outlet.yaml found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'outlet init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the config of the project enclosing the working
// directory. It returns E141 when no enclosing directory has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E120").WithDetail("Cannot determine working directory").Wrap(err)
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
