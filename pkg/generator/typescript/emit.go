package typescript

import (
	"strings"

	"github.com/blimu-dev/schemagen/pkg/ir"
)

// RenderType renders a target type as TypeScript.
func RenderType(t ir.TargetType) string {
	switch t.Kind() {
	case ir.KindNumber:
		return "number"
	case ir.KindString:
		return "string"
	case ir.KindBoolean:
		return "boolean"
	case ir.KindArray:
		return RenderType(t.Elem()) + "[]"
	default:
		return t.Name()
	}
}

// RenderField renders `name: type`.
func RenderField(f ir.Field) string {
	return f.Name + ": " + RenderType(f.Type)
}

// RenderInterface renders an exported interface, one comma-terminated
// member per line, followed by a blank line. Member names are written as
// given, exactly like class fields and parameters.
func RenderInterface(i ir.Interface) string {
	var b strings.Builder
	b.WriteString("export interface ")
	b.WriteString(i.Name)
	b.WriteString("{\n")
	for _, f := range i.Fields {
		b.WriteString("\t")
		b.WriteString(RenderField(f))
		b.WriteString(",\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

// RenderMethod renders a method declaration. Parameters are each followed by
// a comma. The body is indented one tab per non-empty line.
func RenderMethod(m ir.Method) string {
	var b strings.Builder
	if m.IsAsync() {
		b.WriteString("async ")
	}
	b.WriteString(m.Identifier())
	b.WriteString("(")
	for _, p := range m.Params() {
		b.WriteString(RenderField(p))
		b.WriteString(",")
	}
	b.WriteString(")")

	body := indent(m.Body(), "\t")
	if ret, ok := m.Returns(); ok {
		b.WriteString(": ")
		if m.IsAsync() {
			b.WriteString("Promise<" + RenderType(ret) + ">")
		} else {
			b.WriteString(RenderType(ret))
		}
		b.WriteString(" {\n")
		b.WriteString(body)
	} else {
		b.WriteString(" {")
		if body != "" {
			b.WriteString("\n")
			b.WriteString(body)
		}
	}
	b.WriteString("\n}")
	return b.String()
}

// RenderClass renders an exported class: fields first, then methods, each
// indented one tab.
func RenderClass(c ir.Class) string {
	var b strings.Builder
	b.WriteString("export class ")
	b.WriteString(c.Name)
	b.WriteString(" {\n")
	for _, f := range c.Fields {
		b.WriteString("\t")
		b.WriteString(RenderField(f))
		b.WriteString("\n")
	}
	for _, m := range c.Methods {
		b.WriteString(indent(RenderMethod(m), "\t"))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
