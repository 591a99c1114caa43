// Package schema holds the declarative API schema: named structs made of
// typed fields, and named endpoints that move one struct in and another out.
//
// A Schema is read-only once Parse returns it. Nothing in this package
// mutates a Schema after construction.
package schema

import (
	"sort"
)

// Kind is the tag of a scalar or struct-reference type.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBoolean
	KindStruct
)

// Type tags as they appear in the YAML document.
const (
	TagInt     = "int"
	TagFloat   = "float"
	TagString  = "string"
	TagBoolean = "boolean"
)

// Type is a field or endpoint type. Name is set only for KindStruct.
type Type struct {
	Kind Kind
	Name string
}

var (
	Int     = Type{Kind: KindInt}
	Float   = Type{Kind: KindFloat}
	String  = Type{Kind: KindString}
	Boolean = Type{Kind: KindBoolean}
)

// StructRef returns a by-name reference to a struct declared in the same schema.
func StructRef(name string) Type {
	return Type{Kind: KindStruct, Name: name}
}

// TypeFromTag maps a document tag to a Type. Any tag that is not one of the
// scalar tags is a struct reference. Tags are case-sensitive.
func TypeFromTag(tag string) Type {
	switch tag {
	case TagInt:
		return Int
	case TagFloat:
		return Float
	case TagString:
		return String
	case TagBoolean:
		return Boolean
	default:
		return StructRef(tag)
	}
}

// IsStruct reports whether t refers to a declared struct.
func (t Type) IsStruct() bool { return t.Kind == KindStruct }

// String returns the document tag for t.
func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return TagInt
	case KindFloat:
		return TagFloat
	case KindString:
		return TagString
	case KindBoolean:
		return TagBoolean
	default:
		return t.Name
	}
}

// Field is a single named, typed member of a struct.
type Field struct {
	Name string
	Type Type
}

// Struct is an ordered list of fields. Order is the declaration order.
type Struct struct {
	Fields []Field
}

// HTTPMethod is one of the verbs an endpoint may use.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPatch  HTTPMethod = "PATCH"
	MethodDelete HTTPMethod = "DELETE"
)

// Valid reports whether m is a supported verb.
func (m HTTPMethod) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// HasBody reports whether requests with this verb carry a JSON payload.
func (m HTTPMethod) HasBody() bool {
	return m != MethodGet
}

// Endpoint describes one remote operation.
type Endpoint struct {
	URI     string
	Method  HTTPMethod
	Input   Type
	Returns Type
}

// Schema is the whole document.
type Schema struct {
	Version    string
	SchemaDiff string
	Structs    map[string]Struct
	Endpoints  map[string]Endpoint
}

// StructNames returns the struct names in sorted order.
func (s *Schema) StructNames() []string {
	return sortedKeys(s.Structs)
}

// EndpointNames returns the endpoint names in sorted order.
func (s *Schema) EndpointNames() []string {
	return sortedKeys(s.Endpoints)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
