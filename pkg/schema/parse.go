package schema

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/schemagen/pkg/errors"
)

// document mirrors the YAML layout. Pointer fields let Parse tell a missing
// key apart from an empty value.
type document struct {
	Version    *scalar                 `yaml:"version"`
	SchemaDiff *scalar                 `yaml:"schema_diff"`
	Structs    map[string]structNode   `yaml:"structs"`
	Endpoints  map[string]endpointNode `yaml:"endpoints"`
}

type endpointNode struct {
	URI     *scalar `yaml:"uri"`
	Method  *scalar `yaml:"method"`
	Input   *scalar `yaml:"input"`
	Returns *scalar `yaml:"returns"`
}

// scalar accepts any YAML scalar as its literal text, so `version: 1.0`
// stays "1.0" instead of failing a string decode.
type scalar string

func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: expected a scalar value", n.Line)
	}
	*s = scalar(n.Value)
	return nil
}

// structNode decodes a field mapping while keeping declaration order.
type structNode struct {
	fields []Field
}

func (s *structNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.Newf("line %d: struct must be a mapping of field name to type", n.Line)
	}
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return errors.Newf("line %d: field name must be a non-empty string", key.Line)
		}
		if _, dup := seen[key.Value]; dup {
			return errors.Newf("line %d: field %q declared twice", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}
		if val.Kind != yaml.ScalarNode || val.Value == "" {
			return errors.Newf("line %d: field %q must have a type tag", val.Line, key.Value)
		}
		s.fields = append(s.fields, Field{Name: key.Value, Type: TypeFromTag(val.Value)})
	}
	return nil
}

// Parse decodes a schema document. Unknown keys, missing keys, bad verbs and
// duplicate field names are rejected with an error marked errors.ErrParse.
func Parse(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, parseError(errors.New("empty schema document"))
		}
		return nil, parseError(err)
	}

	if doc.Version == nil {
		return nil, parseError(errors.New("missing required key \"version\""))
	}
	if doc.SchemaDiff == nil {
		return nil, parseError(errors.New("missing required key \"schema_diff\""))
	}
	if doc.Structs == nil {
		return nil, parseError(errors.New("missing required key \"structs\""))
	}
	if doc.Endpoints == nil {
		return nil, parseError(errors.New("missing required key \"endpoints\""))
	}

	s := &Schema{
		Version:    string(*doc.Version),
		SchemaDiff: string(*doc.SchemaDiff),
		Structs:    make(map[string]Struct, len(doc.Structs)),
		Endpoints:  make(map[string]Endpoint, len(doc.Endpoints)),
	}
	for name, node := range doc.Structs {
		s.Structs[name] = Struct{Fields: node.fields}
	}
	for name, node := range doc.Endpoints {
		ep, err := buildEndpoint(name, node)
		if err != nil {
			return nil, parseError(err)
		}
		s.Endpoints[name] = ep
	}
	return s, nil
}

func buildEndpoint(name string, node endpointNode) (Endpoint, error) {
	required := []struct {
		key string
		val *scalar
	}{
		{"uri", node.URI},
		{"method", node.Method},
		{"input", node.Input},
		{"returns", node.Returns},
	}
	for _, r := range required {
		if r.val == nil || *r.val == "" {
			return Endpoint{}, errors.Newf("endpoint %q: missing required key %q", name, r.key)
		}
	}
	method := HTTPMethod(*node.Method)
	if !method.Valid() {
		return Endpoint{}, errors.WithHint(
			errors.Newf("endpoint %q: unsupported method %q", name, string(method)),
			"use one of GET, POST, PATCH, DELETE")
	}
	return Endpoint{
		URI:     string(*node.URI),
		Method:  method,
		Input:   TypeFromTag(string(*node.Input)),
		Returns: TypeFromTag(string(*node.Returns)),
	}, nil
}

// Load reads and parses the schema at path. Read failures are marked
// errors.ErrIO.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read schema %s", path), errors.ErrIO)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", path)
	}
	return s, nil
}

func parseError(err error) error {
	return errors.Mark(errors.Wrap(err, "decode schema"), errors.ErrParse)
}
