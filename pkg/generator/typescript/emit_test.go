package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blimu-dev/schemagen/pkg/ir"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

func TestRenderType(t *testing.T) {
	tests := []struct {
		input    ir.TargetType
		expected string
	}{
		{ir.Number, "number"},
		{ir.String, "string"},
		{ir.Boolean, "boolean"},
		{ir.Custom("User"), "User"},
		{ir.ArrayOf(ir.Number), "number[]"},
		{ir.ArrayOf(ir.ArrayOf(ir.Custom("User"))), "User[][]"},
	}
	for _, test := range tests {
		result := RenderType(test.input)
		if result != test.expected {
			t.Errorf("RenderType(%v) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestMapType(t *testing.T) {
	assert.True(t, MapType(schema.Int).Equal(ir.Number))
	assert.True(t, MapType(schema.Float).Equal(ir.Number))
	assert.True(t, MapType(schema.String).Equal(ir.String))
	assert.True(t, MapType(schema.Boolean).Equal(ir.Boolean))
	assert.True(t, MapType(schema.StructRef("Order")).Equal(ir.Custom("Order")))
}

func TestRenderInterface(t *testing.T) {
	i := ir.NewInterface("User").AddField("id", ir.Number).AddField("name", ir.String)
	assert.Equal(t, "export interface User{\n\tid: number,\n\tname: string,\n}\n\n", RenderInterface(*i))

	empty := ir.NewInterface("Empty")
	assert.Equal(t, "export interface Empty{\n}\n\n", RenderInterface(*empty))

	odd := ir.NewInterface("Odd").AddField("content-type", ir.String).AddField("2fa", ir.Boolean)
	assert.Equal(t, "export interface Odd{\n\tcontent-type: string,\n\t2fa: boolean,\n}\n\n", RenderInterface(*odd))

	// interface members and class fields render names the same way
	cls := ir.NewClass("Odd").AddField("content-type", ir.String)
	assert.Equal(t, "export class Odd {\n\tcontent-type: string\n}", RenderClass(*cls))
}

func TestRenderInterface_FromStruct(t *testing.T) {
	st := schema.Struct{Fields: []schema.Field{
		{Name: "zeta", Type: schema.Float},
		{Name: "alpha", Type: schema.StructRef("Other")},
	}}
	assert.Equal(t, "export interface Thing{\n\tzeta: number,\n\talpha: Other,\n}\n\n", RenderInterface(BuildInterface("Thing", st)))
}

func TestRenderMethod(t *testing.T) {
	tests := []struct {
		name     string
		method   ir.Method
		expected string
	}{
		{
			"async with return and empty body",
			ir.NewMethod("get_user").Async().Param("uid", ir.Number).Returns(ir.Custom("User")).Build(),
			"async get_user(uid: number,): Promise<User> {\n\n}",
		},
		{
			"no return, empty body",
			ir.NewMethod("init").Build(),
			"init() {\n}",
		},
		{
			"sync with return",
			ir.NewMethod("count").Returns(ir.Number).Body("return 1;").Build(),
			"count(): number {\n\treturn 1;\n}",
		},
		{
			"no return with body",
			ir.NewMethod("reset").Param("a", ir.String).Param("b", ir.ArrayOf(ir.Boolean)).Body("x();\n\ny();").Build(),
			"reset(a: string,b: boolean[],) {\n\tx();\n\n\ty();\n}",
		},
		{
			"async without return",
			ir.NewMethod("fire").Async().Build(),
			"async fire() {\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderMethod(tt.method))
		})
	}
}

func TestRenderClass(t *testing.T) {
	c := ir.NewClass("Client").
		AddField("checksum", ir.String).
		AddMethod(ir.NewMethod("init").Build()).
		AddMethod(ir.NewMethod("ping").Async().Returns(ir.Boolean).Body("return true;").Build())

	expected := "export class Client {\n" +
		"\tchecksum: string\n" +
		"\tinit() {\n" +
		"\t}\n" +
		"\tasync ping(): Promise<boolean> {\n" +
		"\t\treturn true;\n" +
		"\t}\n" +
		"}"
	assert.Equal(t, expected, RenderClass(*c))

	assert.Equal(t, "export class Empty {\n}", RenderClass(*ir.NewClass("Empty")))
}
