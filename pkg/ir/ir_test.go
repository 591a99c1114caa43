package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodBuilder(t *testing.T) {
	m := NewMethod("get_user").
		Async().
		Param("uid", Number).
		Returns(Custom("User")).
		Body("return 1;").
		Build()

	assert.Equal(t, "get_user", m.Identifier())
	assert.True(t, m.IsAsync())
	assert.Equal(t, []Field{{Name: "uid", Type: Number}}, m.Params())
	ret, ok := m.Returns()
	require.True(t, ok)
	assert.True(t, ret.Equal(Custom("User")))
	assert.Equal(t, "return 1;", m.Body())
}

func TestMethodBuilder_Defaults(t *testing.T) {
	m := NewMethod("init").Build()
	assert.False(t, m.IsAsync())
	assert.Empty(t, m.Params())
	_, ok := m.Returns()
	assert.False(t, ok)
	assert.Equal(t, "", m.Body())
}

func TestMethodBuilder_SingleUse(t *testing.T) {
	b := NewMethod("once")
	first := b.Build()
	assert.Equal(t, "once", first.Identifier())

	assert.Panics(t, func() { b.Build() })
	assert.Panics(t, func() { b.Async() })
	assert.Panics(t, func() { b.Param("x", String) })
	assert.Panics(t, func() { b.Returns(Boolean) })
	assert.Panics(t, func() { b.Body("x") })
}

func TestMethod_ParamsIsCopy(t *testing.T) {
	m := NewMethod("f").Param("a", Number).Build()
	p := m.Params()
	p[0].Name = "changed"
	assert.Equal(t, "a", m.Params()[0].Name)
}

func TestTargetType_Equal(t *testing.T) {
	assert.True(t, ArrayOf(Number).Equal(ArrayOf(Number)))
	assert.False(t, ArrayOf(Number).Equal(ArrayOf(String)))
	assert.True(t, ArrayOf(ArrayOf(Custom("A"))).Equal(ArrayOf(ArrayOf(Custom("A")))))
	assert.False(t, Custom("A").Equal(Custom("B")))
	assert.False(t, Number.Equal(String))
	assert.Equal(t, KindArray, ArrayOf(Boolean).Kind())
	assert.True(t, ArrayOf(Boolean).Elem().Equal(Boolean))
	assert.Panics(t, func() { Number.Elem() })
}

func TestInterfaceAndClassAppend(t *testing.T) {
	i := NewInterface("User").AddField("id", Number).AddField("name", String)
	assert.Equal(t, []Field{{"id", Number}, {"name", String}}, i.Fields)

	c := NewClass("Client").AddField("checksum", String).AddMethod(NewMethod("a").Build()).AddMethod(NewMethod("b").Build())
	require.Len(t, c.Methods, 2)
	assert.Equal(t, "a", c.Methods[0].Identifier())
	assert.Equal(t, "b", c.Methods[1].Identifier())
}
