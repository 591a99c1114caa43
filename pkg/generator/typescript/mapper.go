package typescript

import (
	"github.com/blimu-dev/schemagen/pkg/ir"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// MapType maps a schema type to its TypeScript target type. Both numeric
// tags collapse to number; struct references keep their name.
func MapType(t schema.Type) ir.TargetType {
	switch t.Kind {
	case schema.KindInt, schema.KindFloat:
		return ir.Number
	case schema.KindString:
		return ir.String
	case schema.KindBoolean:
		return ir.Boolean
	default:
		return ir.Custom(t.Name)
	}
}

// BuildInterface maps a schema struct to an interface, keeping field order.
func BuildInterface(name string, st schema.Struct) ir.Interface {
	iface := ir.NewInterface(name)
	for _, f := range st.Fields {
		iface.AddField(f.Name, MapType(f.Type))
	}
	return *iface
}
