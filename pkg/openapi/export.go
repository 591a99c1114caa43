package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

const componentPrefix = "#/components/schemas/"

// Build renders s as an OpenAPI 3 document. Every operation declares the
// checksum header as required and documents the contract rejections.
func Build(s *schema.Schema, header string) (*openapi3.T, error) {
	if err := schema.ResolveAll(s); err != nil {
		return nil, err
	}
	if header == "" {
		header = config.DefaultHeader
	}
	version := s.Version
	if version == "" {
		version = "0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "schemagen API",
			Version:     version,
			Description: s.SchemaDiff,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	// Declare every component before filling properties so references,
	// including self references, point at populated values.
	for _, name := range s.StructNames() {
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	}
	for _, name := range s.StructNames() {
		obj := doc.Components.Schemas[name].Value
		required := make([]string, 0, len(s.Structs[name].Fields))
		for _, f := range s.Structs[name].Fields {
			obj.WithPropertyRef(f.Name, schemaRef(doc, f.Type))
			required = append(required, f.Name)
		}
		obj.WithRequired(required)
	}

	checksum := s.Checksum()
	rejection := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("header", openapi3.NewStringSchema())

	seen := map[string]string{}
	for _, name := range s.EndpointNames() {
		ep := s.Endpoints[name]
		path, server, err := splitURI(ep.URI)
		if err != nil {
			return nil, errors.Wrapf(err, "endpoint %s", name)
		}
		key := string(ep.Method) + " " + path
		if prev, dup := seen[key]; dup {
			return nil, errors.Newf("endpoints %s and %s both map to %s", prev, name, key)
		}
		seen[key] = name

		op := openapi3.NewOperation()
		op.OperationID = name
		headerParam := openapi3.NewHeaderParameter(header).
			WithRequired(true).
			WithDescription("Checksum of the schema the client was generated from").
			WithSchema(openapi3.NewStringSchema().WithEnum(checksum))
		op.Parameters = openapi3.Parameters{&openapi3.ParameterRef{Value: headerParam}}
		if ep.Method.HasBody() {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schemaRef(doc, ep.Input)),
			}
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Success").WithJSONSchemaRef(schemaRef(doc, ep.Returns)),
			}),
			openapi3.WithStatus(400, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Checksum header missing").WithJSONSchema(rejection),
			}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Checksum does not match the schema").WithJSONSchema(rejection),
			}),
		)
		doc.AddOperation(path, string(ep.Method), op)
		if server != "" {
			item := doc.Paths.Value(path)
			if !hasServer(item.Servers, server) {
				item.Servers = append(item.Servers, &openapi3.Server{URL: server})
			}
		}
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, errors.Wrap(err, "validate generated openapi document")
	}
	return doc, nil
}

// Marshal encodes doc as "json" (indented) or "yaml".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(doc)
	default:
		return nil, errors.Mark(fmt.Errorf("unsupported format %q (want json or yaml)", format), errors.ErrInvalidConfig)
	}
}

func schemaRef(doc *openapi3.T, t schema.Type) *openapi3.SchemaRef {
	switch t.Kind {
	case schema.KindInt:
		return openapi3.NewSchemaRef("", openapi3.NewInt32Schema())
	case schema.KindFloat:
		return openapi3.NewSchemaRef("", openapi3.NewFloat64Schema().WithFormat("float"))
	case schema.KindString:
		return openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	case schema.KindBoolean:
		return openapi3.NewSchemaRef("", openapi3.NewBoolSchema())
	default:
		return openapi3.NewSchemaRef(componentPrefix+t.Name, doc.Components.Schemas[t.Name].Value)
	}
}

// splitURI separates an absolute endpoint URI into its path and server. A
// relative URI has no server. Query strings are not part of an OpenAPI path
// and are dropped.
func splitURI(raw string) (path, server string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", errors.Wrapf(err, "parse uri %q", raw)
	}
	path = u.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if u.Scheme != "" && u.Host != "" {
		server = u.Scheme + "://" + u.Host
	}
	return path, server, nil
}

func hasServer(servers openapi3.Servers, u string) bool {
	for _, s := range servers {
		if s.URL == u {
			return true
		}
	}
	return false
}
