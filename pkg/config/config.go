package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

// DefaultHeader is the request header that carries the schema checksum.
const DefaultHeader = "Api-Checksum"

// Target types understood by the default registry.
const (
	TypeTypeScript = "typescript"
	TypeGo         = "go"
)

// Config represents the complete configuration for code generation
type Config struct {
	Schema  string   `yaml:"schema"`
	Header  string   `yaml:"header"`
	Targets []Target `yaml:"targets"`
	// Server is read by the serve command; generation ignores it.
	Server Server `yaml:"server"`
}

// Target represents one generated artifact
type Target struct {
	Type string `yaml:"type"`
	// Out is the output file path
	Out string `yaml:"out"`
	// ClientName is the generated client class name (typescript)
	ClientName string `yaml:"clientName"`
	// Package is the Go package clause of the generated file (go)
	Package string `yaml:"package"`
	// Header overrides the checksum header for this target
	Header string `yaml:"header"`
}

// ChecksumHeader returns the header name the target should use.
func (t Target) ChecksumHeader() string {
	if t.Header != "" {
		return t.Header
	}
	return DefaultHeader
}

// Client returns the client class name, defaulting to "Client".
func (t Target) Client() string {
	if t.ClientName != "" {
		return t.ClientName
	}
	return "Client"
}

// GoPackage returns the package clause, defaulting to "api".
func (t Target) GoPackage() string {
	if t.Package != "" {
		return t.Package
	}
	return "api"
}

// Load loads configuration from a YAML file. Unknown keys are rejected and
// relative paths are resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read config %s", path), errors.ErrIO)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, invalid(errors.Wrapf(err, "decode config %s", path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	cfg.Schema = resolve(base, cfg.Schema)
	if cfg.Server.Schema != "" {
		cfg.Server.Schema = resolve(base, cfg.Server.Schema)
	}
	for i := range cfg.Targets {
		cfg.Targets[i].Out = resolve(base, cfg.Targets[i].Out)
	}
	return &cfg, nil
}

// Validate checks required fields and fills target headers from the
// top-level header.
func (c *Config) Validate() error {
	if c.Schema == "" {
		return invalid(errors.New("config.schema is required"))
	}
	if len(c.Targets) == 0 {
		return invalid(errors.WithHint(errors.New("config.targets is empty"), "add at least one target with type and out"))
	}
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Type == "" || t.Out == "" {
			return invalid(fmt.Errorf("targets[%d] missing required fields (type, out)", i))
		}
		if t.Header == "" {
			t.Header = c.Header
		}
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(filepath.Join(base, p))
	if err != nil {
		return p
	}
	return abs
}

func invalid(err error) error {
	return errors.Mark(err, errors.ErrInvalidConfig)
}
