package typescript

import (
	"fmt"
	"strings"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/ir"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// ChecksumConst is the exported constant holding the schema checksum in the
// generated module.
const ChecksumConst = "SCHEMA_CHECKSUM"

// TypeScriptGenerator implements the Generator interface for TypeScript
type TypeScriptGenerator struct{}

// NewTypeScriptGenerator creates a new TypeScript generator
func NewTypeScriptGenerator() *TypeScriptGenerator {
	return &TypeScriptGenerator{}
}

// GetType returns the generator type identifier
func (g *TypeScriptGenerator) GetType() string {
	return config.TypeTypeScript
}

// Emit resolves struct references and renders the module for target. An
// undeclared name fails the emission and nothing is returned.
func (g *TypeScriptGenerator) Emit(target config.Target, s *schema.Schema) ([]byte, error) {
	if err := schema.ResolveAll(s); err != nil {
		return nil, err
	}
	return []byte(RenderModule(s, target.Client(), target.ChecksumHeader())), nil
}

// RenderModule renders the constants, one interface per struct, then the
// client class. s must already be resolved.
func RenderModule(s *schema.Schema, clientName, header string) string {
	var b strings.Builder
	b.WriteString("// Code generated by schemagen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "export const SCHEMA_VERSION = %s;\n", jsString(s.Version))
	fmt.Fprintf(&b, "export const %s = %s;\n", ChecksumConst, jsString(s.Checksum()))
	fmt.Fprintf(&b, "export const SCHEMA_CHECKSUM_HEADER = %s;\n\n", jsString(header))

	for _, name := range s.StructNames() {
		b.WriteString(RenderInterface(BuildInterface(name, s.Structs[name])))
	}
	b.WriteString(RenderClass(BuildClient(clientName, s, header)))
	b.WriteString("\n")
	return b.String()
}

// BuildClient assembles the client class: the checksum field, a constructor
// that pins it to the generated checksum, and one method per endpoint in
// name order.
func BuildClient(name string, s *schema.Schema, header string) ir.Class {
	client := ir.NewClass(name)
	client.AddField("checksum", ir.String)
	client.AddMethod(ir.NewMethod("constructor").
		Body("this.checksum = " + ChecksumConst + ";").
		Build())
	for _, ep := range s.EndpointNames() {
		client.AddMethod(SynthesizeEndpoint(ep, s.Endpoints[ep], header))
	}
	return *client
}
