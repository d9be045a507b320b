package materialize

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// datum is a computed value: a cty primitive, a host object, or null.
type datum struct {
	prim cty.Value
	obj  reflect.Value
	null bool
}

func primitive(v cty.Value) datum {
	if v.IsNull() {
		return datum{null: true}
	}
	return datum{prim: v}
}

func object(v reflect.Value) datum {
	if !v.IsValid() || v.IsNil() {
		return datum{null: true}
	}
	return datum{obj: v}
}

func (d datum) isObject() bool { return d.obj.IsValid() }

// toGo converts d into a value assignable to t.
func toGo(d datum, t reflect.Type) (reflect.Value, error) {
	if d.null {
		return reflect.Zero(t), nil
	}
	if d.isObject() {
		if !d.obj.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s", d.obj.Type(), t)
		}
		return d.obj, nil
	}

	want, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		return reflect.Value{}, fmt.Errorf("cannot imply cty type for %s: %w", t, err)
	}
	converted, err := convert.Convert(d.prim, want)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("cannot convert value of type %s to %s: %w",
			d.prim.Type().FriendlyName(), want.FriendlyName(), err)
	}
	out := reflect.New(t)
	if err := gocty.FromCtyValue(converted, out.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return out.Elem(), nil
}

// fromGo converts a host value into a datum.
func fromGo(v reflect.Value) (datum, error) {
	if v.Kind() == reflect.Pointer {
		return object(v), nil
	}
	t, err := gocty.ImpliedType(v.Interface())
	if err != nil {
		return datum{}, fmt.Errorf("cannot imply cty type for %s: %w", v.Type(), err)
	}
	cv, err := gocty.ToCtyValue(v.Interface(), t)
	if err != nil {
		return datum{}, err
	}
	return primitive(cv), nil
}
