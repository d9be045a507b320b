package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestTypeRef_AssignableFrom(t *testing.T) {
	str := Primitive(cty.String)
	num := Primitive(cty.Number)
	boolean := Primitive(cty.Bool)
	project := ClassRef("Project")

	testCases := []struct {
		name   string
		slot   TypeRef
		actual TypeRef
		want   bool
	}{
		{"same primitive", str, str, true},
		{"number to string", str, num, true},
		{"bool to number", num, boolean, false},
		{"anything to dynamic", Primitive(cty.DynamicPseudoType), boolean, true},
		{"null to class", project, Null, true},
		{"same class", project, project, true},
		{"other class", project, ClassRef("Settings"), false},
		{"primitive to class", project, str, false},
		{"class to primitive", str, project, false},
		{"unit value", str, Unit, false},
		{"unit slot", Unit, str, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.slot.AssignableFrom(tc.actual))
		})
	}
}

func TestTypeRef_String(t *testing.T) {
	assert.Equal(t, "string", Primitive(cty.String).String())
	assert.Equal(t, "Project", ClassRef("Project").String())
	assert.Equal(t, "unit", Unit.String())
	assert.Equal(t, "null", Null.String())
	assert.True(t, ClassRef("A").Equals(ClassRef("A")))
	assert.False(t, ClassRef("A").Equals(Primitive(cty.String)))
}

func TestArity(t *testing.T) {
	fixed := []*Parameter{{Name: "a"}, {Name: "b", Optional: true}}
	lo, hi := Arity(fixed)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)

	variadic := []*Parameter{{Name: "a"}, {Name: "rest", Optional: true, Variadic: true}}
	lo, hi = Arity(variadic)
	assert.Equal(t, 1, lo)
	assert.Equal(t, -1, hi)

	p, ok := ParameterFor(variadic, 5)
	assert.True(t, ok)
	assert.Equal(t, "rest", p.Name)
	_, ok = ParameterFor(fixed, 2)
	assert.False(t, ok)
}

func TestContextFor(t *testing.T) {
	assert.Equal(t, UnknownScript, ContextFor(struct{}{}))
	ec, ok := ParseEvaluationContext("plugins")
	assert.True(t, ok)
	assert.Equal(t, PluginsBlock, ec)
	_, ok = ParseEvaluationContext("build")
	assert.False(t, ok)
}

func TestTypeRef_HostNumbers(t *testing.T) {
	host := func(v any) TypeRef { return HostPrimitive(cty.Number, reflect.TypeOf(v)) }
	num := Primitive(cty.Number)

	t.Run("assignable between host types", func(t *testing.T) {
		testCases := []struct {
			name   string
			slot   TypeRef
			actual TypeRef
			want   bool
		}{
			{"int8 into int", host(int(0)), host(int8(0)), true},
			{"int into int8", host(int8(0)), host(int(0)), false},
			{"uint8 into int16", host(int16(0)), host(uint8(0)), true},
			{"uint16 into int16", host(int16(0)), host(uint16(0)), false},
			{"int into uint", host(uint(0)), host(int(0)), false},
			{"uint8 into uint32", host(uint32(0)), host(uint8(0)), true},
			{"float into int", host(int64(0)), host(float64(0)), false},
			{"int into float32", host(float32(0)), host(int64(0)), true},
			{"float64 into float32", host(float32(0)), host(float64(0)), false},
			{"unbounded into float64", host(float64(0)), num, true},
			{"unbounded into int", host(int(0)), num, false},
			{"int into unbounded", num, host(int(0)), true},
			{"string into int", host(int(0)), Primitive(cty.String), false},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, tc.slot.AssignableFrom(tc.actual))
			})
		}
	})

	t.Run("accepts constants by value", func(t *testing.T) {
		testCases := []struct {
			name string
			slot TypeRef
			v    cty.Value
			want bool
		}{
			{"whole into int", host(int(0)), cty.NumberIntVal(3), true},
			{"fraction into int", host(int(0)), cty.NumberFloatVal(1.5), false},
			{"max uint8", host(uint8(0)), cty.NumberIntVal(255), true},
			{"overflow uint8", host(uint8(0)), cty.NumberIntVal(256), false},
			{"negative uint", host(uint(0)), cty.NumberIntVal(-1), false},
			{"numeric string into int", host(int(0)), cty.StringVal("42"), true},
			{"word into int", host(int(0)), cty.StringVal("many"), false},
			{"fraction into float", host(float64(0)), cty.NumberFloatVal(0.5), true},
			{"number into string", HostPrimitive(cty.String, reflect.TypeOf("")), cty.NumberIntVal(7), true},
			{"bool into unbounded number", num, cty.True, false},
			{"anything into class", ClassRef("Project"), cty.StringVal("x"), false},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, tc.slot.AcceptsValue(tc.v))
			})
		}
	})

	assert.Equal(t, "number (uint8)", host(uint8(0)).String())
	assert.Equal(t, "string", HostPrimitive(cty.String, reflect.TypeOf("")).String())
	assert.True(t, host(uint8(0)).Equals(num))
}
