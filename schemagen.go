// Package schemagen generates typed client code from a YAML schema of structs
// and endpoints, and guards HTTP APIs against clients built from a different
// schema version.
//
// Quick Start:
//
//	import "github.com/blimu-dev/schemagen"
//
//	// Write a TypeScript client module
//	err := schemagen.Generate("./schema.yml", "./web/src/api.ts")
//
// The generated client sends the schema checksum with every request. Wrap
// the server with the same checksum to reject stale clients:
//
//	sum, _ := schemagen.Checksum("./schema.yml")
//	v, _ := schemagen.NewValidator(sum)
//	http.ListenAndServe(":8080", v.Middleware(mux))
//
// For more advanced usage, see the generator and contract packages.
package schemagen

import (
	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/contract"
	"github.com/blimu-dev/schemagen/pkg/generator"
	"github.com/blimu-dev/schemagen/pkg/openapi"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// Generate reads the schema at schemaPath and writes a TypeScript client
// module to outputPath. On any error no file is written.
//
// Example:
//
//	err := schemagen.Generate("./schema.yml", "./api.ts")
func Generate(schemaPath, outputPath string) error {
	return generator.Generate(schemaPath, outputPath)
}

// GenerateWithOptions generates with full configuration options and reports
// every written artifact.
//
// Example:
//
//	results, err := schemagen.GenerateWithOptions(schemagen.GenerateOptions{
//		Fallback: schemagen.FallbackOptions{
//			Schema:  "./schema.yml",
//			Type:    "go",
//			Out:     "./internal/api/models.go",
//			Package: "api",
//		},
//	})
func GenerateWithOptions(opts GenerateOptions) ([]Result, error) {
	return generator.GenerateWithOptions(opts)
}

// GenerateFromConfig generates every target of a schemagen.yaml config.
// Optionally only the target whose type or output path matches is generated.
//
// Example:
//
//	// Generate all targets from config
//	results, err := schemagen.GenerateFromConfig("./schemagen.yaml")
//
//	// Generate only the go target
//	results, err := schemagen.GenerateFromConfig("./schemagen.yaml", "go")
func GenerateFromConfig(configPath string, onlyTarget ...string) ([]Result, error) {
	return generator.GenerateFromConfig(configPath, onlyTarget...)
}

// Checksum returns the contract checksum of the schema at schemaPath.
func Checksum(schemaPath string) (string, error) {
	return generator.Checksum(schemaPath)
}

// ValidateSchema parses a schema and checks that every struct reference
// resolves. Use it before generating in CI.
func ValidateSchema(schemaPath string) error {
	return generator.ValidateSchema(schemaPath)
}

// ExportOpenAPI renders the schema at schemaPath as an OpenAPI 3 document in
// "json" or "yaml".
func ExportOpenAPI(schemaPath, format string) ([]byte, error) {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return nil, err
	}
	doc, err := openapi.Build(s, config.DefaultHeader)
	if err != nil {
		return nil, err
	}
	return openapi.Marshal(doc, format)
}

// NewValidator returns a checksum validator for HTTP servers.
func NewValidator(checksum string, opts ...contract.Option) (*contract.Validator, error) {
	return contract.New(checksum, opts...)
}

type (
	// GenerateOptions contains options for generation
	GenerateOptions = generator.GenerateOptions
	// FallbackOptions describe a single target when no config file is used
	FallbackOptions = generator.FallbackOptions
	// Result describes one written artifact
	Result = generator.Result
)
