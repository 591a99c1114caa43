package generator

import (
	"fmt"
	"sort"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/generator/golang"
	"github.com/blimu-dev/schemagen/pkg/generator/typescript"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// Generator defines the interface for code generation backends
type Generator interface {
	// Emit renders the artifact for target in memory. It resolves struct
	// references and fails without output if any is undeclared.
	Emit(target config.Target, s *schema.Schema) ([]byte, error)
	// GetType returns the type identifier for this generator (e.g., "typescript")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GenerateOptions contains options for generation
type GenerateOptions struct {
	ConfigPath string
	OnlyTarget string
	Fallback   FallbackOptions
}

// FallbackOptions describe a single target when no config file is provided
type FallbackOptions struct {
	Schema     string
	Type       string
	Out        string
	ClientName string
	Package    string
	Header     string
}

// Result describes one written artifact
type Result struct {
	Type     string
	Path     string
	Bytes    int
	Checksum string
}

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
}

// NewService creates a new generator service with default generators
func NewService() *Service {
	registry := NewRegistry()
	registry.Register(typescript.NewTypeScriptGenerator())
	registry.Register(golang.NewGoGenerator())
	return &Service{
		registry: registry,
	}
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry) *Service {
	return &Service{
		registry: registry,
	}
}

// Generate generates artifacts based on the provided options
func (s *Service) Generate(opts GenerateOptions) ([]Result, error) {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		if opts.Fallback.Schema == "" || opts.Fallback.Out == "" {
			return nil, errors.Mark(
				errors.New("either config path or schema and output must be provided"),
				errors.ErrInvalidConfig)
		}
		typ := opts.Fallback.Type
		if typ == "" {
			typ = config.TypeTypeScript
		}
		cfg = &config.Config{
			Schema: opts.Fallback.Schema,
			Header: opts.Fallback.Header,
			Targets: []config.Target{{
				Type:       typ,
				Out:        opts.Fallback.Out,
				ClientName: opts.Fallback.ClientName,
				Package:    opts.Fallback.Package,
			}},
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	return s.GenerateFromConfig(cfg, opts.OnlyTarget)
}

// GenerateFromConfig loads the schema once and emits every configured target
// (or only the one whose type or output path equals onlyTarget). All targets
// are rendered and staged next to their outputs before any is renamed into
// place, so a failure leaves every output path untouched.
func (s *Service) GenerateFromConfig(cfg *config.Config, onlyTarget string) ([]Result, error) {
	sch, err := schema.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}

	var (
		files   []pendingFile
		results []Result
	)
	checksum := sch.Checksum()
	for _, target := range cfg.Targets {
		if onlyTarget != "" && target.Type != onlyTarget && target.Out != onlyTarget {
			continue
		}
		out, err := s.Render(target, sch)
		if err != nil {
			return nil, errors.Wrapf(err, "emit %s target %s", target.Type, target.Out)
		}
		files = append(files, pendingFile{path: target.Out, content: out})
		results = append(results, Result{Type: target.Type, Path: target.Out, Bytes: len(out), Checksum: checksum})
	}
	if len(files) == 0 && onlyTarget != "" {
		return nil, errors.Mark(fmt.Errorf("no target matches %q", onlyTarget), errors.ErrInvalidConfig)
	}

	if err := writeAll(files); err != nil {
		return nil, err
	}
	return results, nil
}

// Render emits a single target in memory without touching the filesystem.
func (s *Service) Render(target config.Target, sch *schema.Schema) ([]byte, error) {
	gen, exists := s.registry.Get(target.Type)
	if !exists {
		return nil, errors.Mark(
			errors.WithHintf(fmt.Errorf("unsupported target type: %s", target.Type),
				"available types: %v", s.registry.GetAvailableTypes()),
			errors.ErrInvalidConfig)
	}
	return gen.Emit(target, sch)
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}
