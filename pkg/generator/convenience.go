package generator

import (
	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// Generate reads the schema at schemaPath and writes the TypeScript client
// module to outputPath. On any error nothing is written.
func Generate(schemaPath, outputPath string) error {
	_, err := NewService().Generate(GenerateOptions{
		Fallback: FallbackOptions{
			Schema: schemaPath,
			Type:   config.TypeTypeScript,
			Out:    outputPath,
		},
	})
	return err
}

// GenerateWithOptions is a convenience function for generating with full options
func GenerateWithOptions(opts GenerateOptions) ([]Result, error) {
	return NewService().Generate(opts)
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(configPath string, onlyTarget ...string) ([]Result, error) {
	service := NewService()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	only := ""
	if len(onlyTarget) > 0 {
		only = onlyTarget[0]
	}

	return service.GenerateFromConfig(cfg, only)
}

// Checksum returns the contract checksum of the schema at schemaPath.
func Checksum(schemaPath string) (string, error) {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return "", err
	}
	return s.Checksum(), nil
}

// ValidateSchema parses the schema and resolves every struct reference.
func ValidateSchema(schemaPath string) error {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	return schema.ResolveAll(s)
}
