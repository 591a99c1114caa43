package golang

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"

	"github.com/blimu-dev/schemagen/pkg/schema"
	"github.com/blimu-dev/schemagen/pkg/utils"
)

var toPascalCase = utils.ToPascalCase

// MapType maps a schema type to its Go spelling.
func MapType(t schema.Type) string {
	switch t.Kind {
	case schema.KindInt:
		return "int32"
	case schema.KindFloat:
		return "float32"
	case schema.KindString:
		return "string"
	case schema.KindBoolean:
		return "bool"
	default:
		return goIdent(t.Name)
	}
}

// goIdent turns a schema name into an exported Go identifier.
func goIdent(name string) string {
	id := toPascalCase(name)
	if id == "" {
		id = "X"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "X" + id
	}
	if !token.IsExported(id) {
		id = "X" + id
	}
	return id
}

func goStructTag(name string) string {
	return fmt.Sprintf("`json:\"%s\"`", name)
}

// formatGoComment formats a string as a proper Go comment, handling multiline descriptions
func formatGoComment(s string) string {
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")
	var result []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			result = append(result, "//")
		} else {
			result = append(result, "// "+line)
		}
	}

	return strings.Join(result, "\n")
}

var invalidPackageChars = regexp.MustCompile(`[^a-z0-9_]`)

// sanitizePackageName ensures the package name is valid for Go
func sanitizePackageName(name string) string {
	// Extract the last part of the package name if it looks like an import path
	parts := strings.Split(name, "/")
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}

	name = strings.ToLower(name)
	name = invalidPackageChars.ReplaceAllString(name, "")

	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		name = "pkg" + name
	}
	if name == "" {
		name = "api"
	}
	return name
}
