package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	assert.Equal(t, "null", Null{}.Kind().String())
	assert.Equal(t, "boolean", Bool(true).Kind().String())
	assert.Equal(t, "number", Int(1).Kind().String())
	assert.Equal(t, "string", String("x").Kind().String())
	assert.Equal(t, "array", Array{}.Kind().String())
	assert.Equal(t, "object", Object{}.Kind().String())
}

func TestNumber_IntegerAndFloatLiterals(t *testing.T) {
	n, err := NumberFromLiteral("42")
	require.NoError(t, err)
	assert.True(t, n.IsInt())
	assert.Equal(t, int64(42), n.Int64())
	assert.Equal(t, "42", n.String())

	f, err := NumberFromLiteral("3.14")
	require.NoError(t, err)
	assert.False(t, f.IsInt())
	assert.Equal(t, 3.14, f.Float64())
	assert.Equal(t, "3.14", f.String())

	e, err := NumberFromLiteral("1e3")
	require.NoError(t, err)
	assert.False(t, e.IsInt(), "exponent notation is a float literal")

	_, err = NumberFromLiteral("not-a-number")
	assert.Error(t, err)
}

func TestNumber_EqualAcrossSpellings(t *testing.T) {
	one, _ := NumberFromLiteral("1")
	oneFloat, _ := NumberFromLiteral("1.0")
	assert.True(t, Equal(one, oneFloat), "1 and 1.0 are the same quantity")
	assert.True(t, Equal(Int(2), Float(2.0)))
	assert.False(t, Equal(Int(1), Int(2)))

	// The literal spelling survives even though the values compare equal.
	assert.Equal(t, "1", one.String())
	assert.Equal(t, "1.0", oneFloat.String())
}

func TestObject_FindPreservesOrder(t *testing.T) {
	obj := Object{
		Field("b", Int(1)),
		Field("a", Int(2)),
		Field("c", Int(3)),
	}

	v, ok := obj.Find("a")
	require.True(t, ok)
	assert.True(t, Equal(Int(2), v))

	_, ok = obj.Find("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
}

func TestEqual_Structural(t *testing.T) {
	a := Object{
		Field("name", String("Alice")),
		Field("tags", Array{String("x"), String("y")}),
		Field("meta", Null{}),
	}
	b := Object{
		Field("name", String("Alice")),
		Field("tags", Array{String("x"), String("y")}),
		Field("meta", Null{}),
	}
	assert.True(t, Equal(a, b))

	// Same members in a different order are not structurally equal.
	c := Object{
		Field("tags", Array{String("x"), String("y")}),
		Field("name", String("Alice")),
		Field("meta", Null{}),
	}
	assert.False(t, Equal(a, c))

	// Different variants never compare equal.
	assert.False(t, Equal(Int(1), String("1")))
	assert.False(t, Equal(Array{}, Object{}))
}

func TestMarshalJSON_OrderedObject(t *testing.T) {
	obj := Object{
		Field("z", Int(1)),
		Field("a", Object{Field("nested", Bool(true))}),
		Field("m", Array{Null{}, Float(0.5)}),
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"nested":true},"m":[null,0.5]}`, string(data))
}

func TestToGoFromGoRoundTrip(t *testing.T) {
	orig := Object{
		Field("n", Int(7)),
		Field("f", Float(2.5)),
		Field("s", String("hi")),
		Field("b", Bool(false)),
		Field("nul", Null{}),
		Field("arr", Array{Int(1), Int(2)}),
	}

	goVal := ToGo(orig)
	m, ok := goVal.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("7"), m["n"])
	assert.Equal(t, "hi", m["s"])

	back, err := FromGo(goVal)
	require.NoError(t, err)
	// Map round-trip loses member order, so compare per key.
	backObj, ok := back.(Object)
	require.True(t, ok)
	require.Equal(t, orig.Len(), backObj.Len())
	for _, member := range orig {
		v, found := backObj.Find(member.Key)
		require.True(t, found, "key %q", member.Key)
		assert.True(t, Equal(member.Value, v), "key %q", member.Key)
	}
}
