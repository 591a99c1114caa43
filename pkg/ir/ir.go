// Package ir is the intermediate representation of the generated client code:
// target types, fields, interfaces, classes and methods. It carries no text;
// each backend's emitter turns these values into source.
package ir

// TargetKind is the variant of a TargetType.
type TargetKind int

const (
	KindNumber TargetKind = iota
	KindString
	KindBoolean
	KindArray
	KindCustom
)

// TargetType is a type in the generated language.
type TargetType struct {
	kind TargetKind
	elem *TargetType
	name string
}

var (
	Number  = TargetType{kind: KindNumber}
	String  = TargetType{kind: KindString}
	Boolean = TargetType{kind: KindBoolean}
)

// ArrayOf returns the array type with element type elem.
func ArrayOf(elem TargetType) TargetType {
	return TargetType{kind: KindArray, elem: &elem}
}

// Custom returns a named user-defined type.
func Custom(name string) TargetType {
	return TargetType{kind: KindCustom, name: name}
}

func (t TargetType) Kind() TargetKind { return t.kind }

// Name is the declared name of a custom type, empty otherwise.
func (t TargetType) Name() string { return t.name }

// Elem returns the element type of an array. It panics for other kinds.
func (t TargetType) Elem() TargetType {
	if t.kind != KindArray {
		panic("ir: Elem of non-array type")
	}
	return *t.elem
}

// Equal reports whether t and o denote the same type.
func (t TargetType) Equal(o TargetType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindArray:
		return t.elem.Equal(*o.elem)
	case KindCustom:
		return t.name == o.name
	}
	return true
}

// Field is a named, typed member or parameter.
type Field struct {
	Name string
	Type TargetType
}

// Interface is a named, ordered set of fields. Fields are only ever appended.
type Interface struct {
	Name   string
	Fields []Field
}

// NewInterface returns an empty interface named name.
func NewInterface(name string) *Interface {
	return &Interface{Name: name}
}

// AddField appends a field and returns the interface for chaining.
func (i *Interface) AddField(name string, t TargetType) *Interface {
	i.Fields = append(i.Fields, Field{Name: name, Type: t})
	return i
}

// Class is a named set of fields and methods, both append-only.
type Class struct {
	Name    string
	Fields  []Field
	Methods []Method
}

// NewClass returns an empty class named name.
func NewClass(name string) *Class {
	return &Class{Name: name}
}

func (c *Class) AddField(name string, t TargetType) *Class {
	c.Fields = append(c.Fields, Field{Name: name, Type: t})
	return c
}

func (c *Class) AddMethod(m Method) *Class {
	c.Methods = append(c.Methods, m)
	return c
}
