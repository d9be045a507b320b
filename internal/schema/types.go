package schema

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TypeKind distinguishes the shapes a TypeRef can take.
type TypeKind int

const (
	// KindPrimitive is a cty primitive (string, number, bool) or any.
	KindPrimitive TypeKind = iota
	// KindClass references a DataClass by name.
	KindClass
	// KindUnit is the type of functions that return nothing.
	KindUnit
	// KindNull is the type of the null literal.
	KindNull
)

// TypeRef is a reference to a type known to a schema.
type TypeRef struct {
	Kind      TypeKind
	Primitive cty.Type
	Class     string

	// GoType is the host type behind a primitive slot, nil when any value
	// of Primitive fits. Numbers stored in Go integers are narrower than
	// cty numbers.
	GoType reflect.Type
}

// Unit is the result type of functions without a value.
var Unit = TypeRef{Kind: KindUnit}

// Null is the type of the null literal.
var Null = TypeRef{Kind: KindNull}

// Primitive wraps a cty type.
func Primitive(t cty.Type) TypeRef {
	return TypeRef{Kind: KindPrimitive, Primitive: t}
}

// HostPrimitive wraps a cty type stored in a host value of type goType.
func HostPrimitive(t cty.Type, goType reflect.Type) TypeRef {
	return TypeRef{Kind: KindPrimitive, Primitive: t, GoType: goType}
}

// ClassRef references the data class with the given name.
func ClassRef(name string) TypeRef {
	return TypeRef{Kind: KindClass, Class: name}
}

// IsUnit reports whether the type is Unit.
func (t TypeRef) IsUnit() bool { return t.Kind == KindUnit }

// IsClass reports whether the type references a data class.
func (t TypeRef) IsClass() bool { return t.Kind == KindClass }

// String returns a human-friendly name of the type.
func (t TypeRef) String() string {
	switch t.Kind {
	case KindPrimitive:
		if t.Primitive == cty.NilType {
			return "invalid"
		}
		if _, ok := numberKindOf(t.GoType); ok && t.Primitive.Equals(cty.Number) {
			return t.Primitive.FriendlyName() + " (" + t.GoType.String() + ")"
		}
		return t.Primitive.FriendlyName()
	case KindClass:
		return t.Class
	case KindUnit:
		return "unit"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Equals reports whether both references denote the same type. GoType is
// not compared: a number is a number to scripts.
func (t TypeRef) Equals(other TypeRef) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.Equals(other.Primitive)
	case KindClass:
		return t.Class == other.Class
	default:
		return true
	}
}

// AssignableFrom reports whether a value of type actual can be stored in a
// slot of type t. Primitive values may be converted when cty knows a safe
// conversion (number to string, for example).
func (t TypeRef) AssignableFrom(actual TypeRef) bool {
	if t.Kind == KindUnit || actual.Kind == KindUnit {
		return false
	}
	if actual.Kind == KindNull {
		return true
	}
	switch t.Kind {
	case KindClass:
		return actual.Kind == KindClass && actual.Class == t.Class
	case KindPrimitive:
		if actual.Kind != KindPrimitive {
			return false
		}
		if t.Primitive == cty.DynamicPseudoType {
			return true
		}
		if !t.Primitive.Equals(actual.Primitive) && convert.GetConversion(actual.Primitive, t.Primitive) == nil {
			return false
		}
		if !t.Primitive.Equals(cty.Number) {
			return true
		}
		return numberFits(actual.GoType, t.GoType)
	default:
		return false
	}
}

// AcceptsValue reports whether the constant v can be stored in a slot of
// type t, checking the value itself rather than only its type. A fractional
// or out of range number is rejected for an integer slot.
func (t TypeRef) AcceptsValue(v cty.Value) bool {
	if v.IsNull() {
		return t.Kind != KindUnit
	}
	if t.Kind != KindPrimitive {
		return false
	}
	if t.Primitive == cty.DynamicPseudoType {
		return true
	}
	converted, err := convert.Convert(v, t.Primitive)
	if err != nil {
		return false
	}
	if t.GoType == nil {
		return true
	}
	return gocty.FromCtyValue(converted, reflect.New(t.GoType).Interface()) == nil
}

// numberKind describes the numbers a Go numeric type holds.
type numberKind struct {
	float    bool
	unsigned bool
	bits     int
}

func numberKindOf(t reflect.Type) (numberKind, bool) {
	if t == nil {
		return numberKind{}, false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numberKind{bits: t.Bits()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numberKind{unsigned: true, bits: t.Bits()}, true
	case reflect.Float32, reflect.Float64:
		return numberKind{float: true, bits: t.Bits()}, true
	default:
		return numberKind{}, false
	}
}

// numberFits reports whether every number a src slot can hold also fits a
// dst slot. A nil type stands for an unbounded cty number.
func numberFits(src, dst reflect.Type) bool {
	d, bounded := numberKindOf(dst)
	if !bounded {
		return true
	}
	s, ok := numberKindOf(src)
	switch {
	case d.float && !ok:
		return d.bits == 64
	case d.float:
		return !s.float || s.bits <= d.bits
	case !ok || s.float:
		return false
	case d.unsigned:
		return s.unsigned && s.bits <= d.bits
	case s.unsigned:
		return s.bits < d.bits
	default:
		return s.bits <= d.bits
	}
}
