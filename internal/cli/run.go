package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/blimu-dev/schemagen/internal/gateway"
	"github.com/blimu-dev/schemagen/internal/logger"
	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/generator"
	"github.com/blimu-dev/schemagen/pkg/openapi"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

type FallbackParams struct {
	Schema     string
	Type       string
	Out        string
	ClientName string
	Package    string
	Header     string
}

type RunGenerateParams struct {
	ConfigPath string
	OnlyTarget string
	// Stdout renders the fallback target to the writer instead of a file.
	Stdout   bool
	Fallback FallbackParams
}

func RunGenerate(p RunGenerateParams, w io.Writer) ([]generator.Result, error) {
	if p.Stdout {
		return nil, renderToWriter(p.Fallback, w)
	}

	opts := generator.GenerateOptions{
		ConfigPath: p.ConfigPath,
		OnlyTarget: p.OnlyTarget,
	}
	if p.ConfigPath == "" {
		if p.Fallback.Schema == "" || p.Fallback.Out == "" {
			return nil, errors.Mark(
				errors.WithHint(errors.New("no config and no schema/output given"),
					"pass --config, or both --schema and --out (or --stdout)"),
				errors.ErrInvalidConfig)
		}
		opts.Fallback = generator.FallbackOptions{
			Schema:     absPath(p.Fallback.Schema),
			Type:       p.Fallback.Type,
			Out:        absPath(p.Fallback.Out),
			ClientName: p.Fallback.ClientName,
			Package:    p.Fallback.Package,
			Header:     p.Fallback.Header,
		}
	}

	results, err := generator.NewService().Generate(opts)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		logger.Logger.Infow("generated",
			"type", r.Type,
			"path", r.Path,
			"bytes", r.Bytes,
			"checksum", r.Checksum)
	}
	return results, nil
}

func renderToWriter(f FallbackParams, w io.Writer) error {
	if f.Schema == "" {
		return errors.Mark(
			errors.WithHint(errors.New("--stdout needs a schema"), "pass --schema"),
			errors.ErrInvalidConfig)
	}
	s, err := schema.Load(f.Schema)
	if err != nil {
		return err
	}
	typ := f.Type
	if typ == "" {
		typ = config.TypeTypeScript
	}
	out, err := generator.NewService().Render(config.Target{
		Type:       typ,
		ClientName: f.ClientName,
		Package:    f.Package,
		Header:     f.Header,
	}, s)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// RunChecksum prints the contract checksum of the schema to w.
func RunChecksum(schemaPath string, w io.Writer) error {
	sum, err := generator.Checksum(schemaPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, sum)
	return err
}

func RunValidate(schemaPath string) error {
	if err := generator.ValidateSchema(schemaPath); err != nil {
		return err
	}
	logger.Logger.Infow("schema is valid", "schema", schemaPath)
	return nil
}

// RunValidateOpenAPI validates an OpenAPI document, for example one written
// by export-openapi, from a file or URL.
func RunValidateOpenAPI(input string) error {
	if err := openapi.ValidateDocument(input); err != nil {
		return err
	}
	logger.Logger.Infow("openapi document is valid", "input", input)
	return nil
}

type RunExportParams struct {
	Schema string
	Header string
	Format string
	// Out is a file path; empty writes to the provided writer.
	Out string
}

func RunExport(p RunExportParams, w io.Writer) error {
	s, err := schema.Load(p.Schema)
	if err != nil {
		return err
	}
	header := p.Header
	if header == "" {
		header = config.DefaultHeader
	}
	doc, err := openapi.Build(s, header)
	if err != nil {
		return err
	}
	out, err := openapi.Marshal(doc, p.Format)
	if err != nil {
		return err
	}
	// what gets written must load back as a valid document
	if err := openapi.ValidateData(out); err != nil {
		return err
	}
	if p.Out == "" {
		_, err = w.Write(out)
		return err
	}
	path := absPath(p.Out)
	if err := generator.WriteFile(path, out); err != nil {
		return err
	}
	logger.Logger.Infow("exported openapi", "path", path, "bytes", len(out))
	return nil
}

// RunServe runs the contract gateway until ctx is cancelled.
func RunServe(ctx context.Context, cfg *config.Server) error {
	g, err := gateway.New(cfg, logger.Named("gateway"))
	if err != nil {
		return err
	}
	return g.Run(ctx)
}
