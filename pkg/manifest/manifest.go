package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/router"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from a file name. Unknown extensions are
// read as YAML, which also accepts JSON documents.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Manifest is the serialized form of a route collection.
type Manifest struct {
	// NotFound overrides the not-found pattern when set.
	NotFound string `json:"notFound,omitempty" yaml:"notFound,omitempty"`

	// TieBreak overrides the tie-break policy ("specificity" or
	// "last-registered") when set.
	TieBreak string `json:"tieBreak,omitempty" yaml:"tieBreak,omitempty"`

	// Routes in registration order.
	Routes []Route `json:"routes" yaml:"routes"`
}

// Route is one manifest entry.
type Route struct {
	Pattern   string      `json:"pattern" yaml:"pattern"`
	Target    string      `json:"target" yaml:"target"`
	Protected bool        `json:"protected,omitempty" yaml:"protected,omitempty"`
	Meta      router.Meta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Decode reads a manifest. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.New("E200").
				WithDetail("Failed to parse JSON manifest: " + err.Error()).
				Wrap(err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && err != io.EOF {
			return nil, errors.New("E200").
				WithDetail("Failed to parse YAML manifest: " + err.Error()).
				Wrap(err)
		}
	default:
		return nil, errors.New("E200").WithDetail(fmt.Sprintf("unsupported manifest format %q", format))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Parse decodes a manifest held in memory.
func Parse(data []byte, format Format) (*Manifest, error) {
	return Decode(bytes.NewReader(data), format)
}

// Validate checks that every route has a pattern and a target and that no
// pattern is listed twice. Pattern syntax itself is not validated.
func (m *Manifest) Validate() error {
	if _, ok := router.ParseTieBreak(m.TieBreak); !ok {
		return errors.New("E200").
			WithDetail(fmt.Sprintf("unknown tieBreak %q", m.TieBreak)).
			WithSuggestion(`Use "specificity" or "last-registered"`)
	}

	seen := make(map[string]bool, len(m.Routes))
	for i, r := range m.Routes {
		if r.Pattern == "" {
			return errors.New("E200").WithDetail(fmt.Sprintf("route #%d has no pattern", i+1))
		}
		if r.Target == "" {
			return errors.New("E200").WithDetail(fmt.Sprintf("route %q has no target", r.Pattern))
		}
		if seen[r.Pattern] {
			return errors.New("E200").
				WithDetail(fmt.Sprintf("route %q is listed more than once", r.Pattern)).
				WithSuggestion("Remove the duplicate entry; the last one would silently win")
		}
		seen[r.Pattern] = true
	}
	return nil
}

// Build creates a collection from the manifest. Manifest settings take
// precedence over opts.
func (m *Manifest) Build(opts ...router.Option) (*router.Collection[router.Meta], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.NotFound != "" {
		opts = append(opts, router.WithNotFoundPattern(m.NotFound))
	}
	if m.TieBreak != "" {
		tb, _ := router.ParseTieBreak(m.TieBreak)
		opts = append(opts, router.WithTieBreak(tb))
	}

	c := router.NewCollection[router.Meta](opts...)
	for _, r := range m.Routes {
		c.Add(r.Pattern, router.NewRoute(r.Target, r.Protected, r.Meta))
	}
	return c, nil
}

// FromCollection converts a collection back into a manifest.
func FromCollection(c *router.Collection[router.Meta]) *Manifest {
	m := &Manifest{
		NotFound: c.NotFoundPattern(),
		TieBreak: c.TieBreak().String(),
	}
	for _, reg := range c.Registrations() {
		r := Route{Pattern: reg.Pattern}
		if reg.Route != nil {
			r.Target = reg.Route.TargetID()
			r.Protected = reg.Route.Protected()
			r.Meta = reg.Route.Meta()
		}
		m.Routes = append(m.Routes, r)
	}
	return m
}

// Encode writes the manifest in the given format.
func (m *Manifest) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported manifest format %q", format)
	}
}

// BaseRoutes returns the example route set: an index page, the not-found
// page and one dynamic route.
func BaseRoutes() *router.Collection[router.Meta] {
	c := router.NewCollection[router.Meta]()
	c.Add("/", router.NewRoute("default-index-view", false, router.Meta{Title: "Home"}))
	c.Add("/404", router.NewRoute("default-not-found-view", false, router.Meta{Title: "Not Found"}))
	c.Add("/dynamic/:firstValue/example/:secondValue", router.NewRoute("dynamic-example-view", false, router.Meta{Title: "Dynamic Example"}))
	return c
}
