package schema

import (
	"github.com/blimu-dev/schemagen/pkg/errors"
)

// Index resolves struct references by name. References are never followed
// at parse time, so forward and self references are fine; a name that is
// never declared surfaces here as errors.ErrUnresolvedReference.
type Index struct {
	structs map[string]Struct
}

// NewIndex builds a name index over the structs of s.
func NewIndex(s *Schema) *Index {
	return &Index{structs: s.Structs}
}

// Lookup returns the struct declared under name.
func (ix *Index) Lookup(name string) (Struct, bool) {
	st, ok := ix.structs[name]
	return st, ok
}

// Resolve checks that t, if it is a struct reference, names a declared struct.
// where describes the referencing site for the error message.
func (ix *Index) Resolve(t Type, where string) error {
	if !t.IsStruct() {
		return nil
	}
	if _, ok := ix.Lookup(t.Name); ok {
		return nil
	}
	return errors.Mark(
		errors.WithHintf(
			errors.Newf("%s references undeclared struct %q", where, t.Name),
			"declare %q under structs: or use one of int, float, string, boolean", t.Name),
		errors.ErrUnresolvedReference)
}

// ResolveAll checks every reference in s in a deterministic order and returns
// the first failure.
func ResolveAll(s *Schema) error {
	ix := NewIndex(s)
	for _, name := range s.StructNames() {
		for _, f := range s.Structs[name].Fields {
			if err := ix.Resolve(f.Type, "struct "+name+" field "+f.Name); err != nil {
				return err
			}
		}
	}
	for _, name := range s.EndpointNames() {
		ep := s.Endpoints[name]
		if err := ix.Resolve(ep.Input, "endpoint "+name+" input"); err != nil {
			return err
		}
		if err := ix.Resolve(ep.Returns, "endpoint "+name+" returns"); err != nil {
			return err
		}
	}
	return nil
}
