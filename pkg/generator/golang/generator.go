package golang

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/schemagen/pkg/config"
	"github.com/blimu-dev/schemagen/pkg/errors"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

//go:embed templates/*
var templatesFS embed.FS

// GoGenerator implements the Generator interface for Go. It emits one
// struct per schema struct plus the checksum constants a server needs.
type GoGenerator struct{}

// NewGoGenerator creates a new Go generator
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

// GetType returns the generator type identifier
func (g *GoGenerator) GetType() string {
	return config.TypeGo
}

type fieldData struct {
	Name     string
	Type     string
	JSONName string
}

type structData struct {
	Name   string
	Fields []fieldData
}

type modelsData struct {
	Package  string
	Version  string
	Diff     string
	Checksum string
	Header   string
	Structs  []structData
}

// Emit renders models.go for s, gofmt-formatted.
func (g *GoGenerator) Emit(target config.Target, s *schema.Schema) ([]byte, error) {
	if err := schema.ResolveAll(s); err != nil {
		return nil, err
	}
	data, err := buildModels(target, s)
	if err != nil {
		return nil, err
	}

	funcMap := template.FuncMap{
		"formatGoComment": formatGoComment,
		"goStructTag":     goStructTag,
	}
	for k, v := range sprig.TxtFuncMap() {
		if _, taken := funcMap[k]; !taken {
			funcMap[k] = v
		}
	}

	var buf bytes.Buffer
	if err := renderTemplate(&buf, "models.go.gotmpl", funcMap, data); err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated go source")
	}
	return out, nil
}

// reservedNames are the package-level identifiers the template declares.
var reservedNames = []string{"SchemaVersion", "SchemaChecksum", "SchemaChecksumHeader"}

func buildModels(target config.Target, s *schema.Schema) (modelsData, error) {
	data := modelsData{
		Package:  sanitizePackageName(target.GoPackage()),
		Version:  s.Version,
		Diff:     s.SchemaDiff,
		Checksum: s.Checksum(),
		Header:   target.ChecksumHeader(),
	}
	typeNames := map[string]string{}
	for _, c := range reservedNames {
		typeNames[c] = ""
	}
	for _, name := range s.StructNames() {
		id := goIdent(name)
		if prev, dup := typeNames[id]; dup {
			if prev == "" {
				return modelsData{}, errors.WithHintf(
					errors.Newf("struct %q maps to Go type %s, which is a generated constant", name, id),
					"rename the struct; %v are reserved in the generated file", reservedNames)
			}
			return modelsData{}, errors.WithHint(
				errors.Newf("structs %q and %q both map to Go type %s", prev, name, id),
				"rename one of the structs")
		}
		typeNames[id] = name

		sd := structData{Name: id}
		fieldNames := map[string]string{}
		for _, f := range s.Structs[name].Fields {
			fid := goIdent(f.Name)
			if prev, dup := fieldNames[fid]; dup {
				return modelsData{}, errors.Newf("struct %s: fields %q and %q both map to Go field %s", name, prev, f.Name, fid)
			}
			fieldNames[fid] = f.Name
			sd.Fields = append(sd.Fields, fieldData{Name: fid, Type: MapType(f.Type), JSONName: f.Name})
		}
		data.Structs = append(data.Structs, sd)
	}
	return data, nil
}

// renderTemplate renders an embedded template into buf
func renderTemplate(buf *bytes.Buffer, templateName string, funcMap template.FuncMap, data any) error {
	tmplContent, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return nil
}
