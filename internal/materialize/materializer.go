package materialize

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/objectgraph"
	"github.com/zclconf/go-cty/cty"
)

// Materializer applies object graphs to host objects. It is safe for
// concurrent use; each Apply keeps its own state.
type Materializer struct {
	tables sync.Map // reflect.Type -> *dispatch
}

// New creates a materializer.
func New() *Materializer {
	return &Materializer{}
}

// Apply mutates target, which must be a pointer to the struct type the
// root reflection was built for. Operations run in order, nested ones
// before the next sibling.
func (m *Materializer) Apply(ctx context.Context, root *objectgraph.ObjectReflection, target any) error {
	logger := ctxlog.FromContext(ctx)

	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.IsNil() || tv.Elem().Kind() != reflect.Struct {
		return &InvariantViolation{Detail: fmt.Sprintf("target %T is not a pointer to a struct", target)}
	}
	if root.Class != nil && root.Class.GoType != nil && tv.Elem().Type() != root.Class.GoType {
		return &InvariantViolation{Detail: fmt.Sprintf("target %T does not match class %s", target, root.Class.Name)}
	}

	a := &applier{m: m, objects: map[int]reflect.Value{objectgraph.TopLevelID: tv}}
	if err := a.apply(root); err != nil {
		return err
	}

	logger.Debug("Target materialized.", "target", fmt.Sprintf("%T", target), "objects", len(a.objects))
	return nil
}

type applier struct {
	m       *Materializer
	objects map[int]reflect.Value
}

func (a *applier) apply(r *objectgraph.ObjectReflection) error {
	for _, op := range r.Operations {
		if err := a.operation(op); err != nil {
			return err
		}
	}
	return nil
}

func (a *applier) operation(op objectgraph.Operation) error {
	src := op.Source()
	switch v := op.(type) {
	case *objectgraph.SetProperty:
		obj, err := a.object(src, v.Receiver)
		if err != nil {
			return err
		}
		field, ok := a.m.table(obj.Elem().Type()).field(obj, v.Property.GoField)
		if !ok || !field.CanSet() {
			return violation(src, "no settable field %s for property %s", v.Property.GoField, v.Property.Name)
		}
		d, err := a.eval(src, v.Value)
		if err != nil {
			return err
		}
		gv, err := toGo(d, field.Type())
		if err != nil {
			return &InvariantViolation{Source: src, Detail: "setting " + v.Property.Name, Err: err}
		}
		field.Set(gv)
		return nil

	case *objectgraph.InvokeFunction:
		obj, err := a.object(src, v.Receiver)
		if err != nil {
			return err
		}
		result, err := a.call(src, obj, v.Function.GoMethod, v.Function.Name, v.Args)
		if err != nil {
			return err
		}
		if v.Configure == nil {
			return nil
		}
		if !result.isObject() {
			return violation(src, "%s returned no object to configure", v.Function.Name)
		}
		a.objects[v.ID] = result.obj
		return a.apply(v.Configure)

	case *objectgraph.Nest:
		if _, err := a.object(src, v.Object.Receiver); err != nil {
			return err
		}
		return a.apply(v.Object)

	default:
		return violation(src, "unexpected operation %T", op)
	}
}

// object evaluates a receiver, which must be a host object.
func (a *applier) object(src langtree.SourceData, v objectgraph.Value) (reflect.Value, error) {
	d, err := a.eval(src, v)
	if err != nil {
		return reflect.Value{}, err
	}
	if !d.isObject() {
		return reflect.Value{}, violation(src, "%s is not an object", v)
	}
	return d.obj, nil
}

func (a *applier) eval(src langtree.SourceData, v objectgraph.Value) (datum, error) {
	switch v := v.(type) {
	case objectgraph.Constant:
		return primitive(v.Value), nil

	case objectgraph.Null:
		return datum{null: true}, nil

	case objectgraph.ObjectRef:
		obj, ok := a.objects[v.ID]
		if !ok {
			return datum{}, violation(src, "object %s was never created", v)
		}
		return object(obj), nil

	case objectgraph.HostProperty:
		obj, err := a.object(src, v.Receiver)
		if err != nil {
			return datum{}, err
		}
		field, ok := a.m.table(obj.Elem().Type()).field(obj, v.Property.GoField)
		if !ok {
			return datum{}, violation(src, "no field %s for property %s", v.Property.GoField, v.Property.Name)
		}
		// Nested objects the host left nil are created on first access.
		if field.Kind() == reflect.Pointer && field.IsNil() && field.Type().Elem().Kind() == reflect.Struct {
			if !field.CanSet() {
				return datum{}, violation(src, "cannot create nested object %s", v.Property.Name)
			}
			field.Set(reflect.New(field.Type().Elem()))
		}
		d, err := fromGo(field)
		if err != nil {
			return datum{}, &InvariantViolation{Source: src, Detail: "reading " + v.Property.Name, Err: err}
		}
		return d, nil

	case objectgraph.PureCall:
		obj, err := a.object(src, v.Receiver)
		if err != nil {
			return datum{}, err
		}
		return a.call(src, obj, v.Function.GoMethod, v.Function.Name, v.Args)

	case objectgraph.ExternalCall:
		args := make([]cty.Value, len(v.Args))
		for i, arg := range v.Args {
			d, err := a.eval(src, arg)
			if err != nil {
				return datum{}, err
			}
			switch {
			case d.null:
				args[i] = cty.NullVal(cty.DynamicPseudoType)
			case d.isObject():
				return datum{}, violation(src, "object passed to external function %s", v.Function.Name)
			default:
				args[i] = d.prim
			}
		}
		out, err := v.Function.Impl.Call(args)
		if err != nil {
			return datum{}, &CallError{Source: src, Function: v.Function.Name, Err: err}
		}
		return primitive(out), nil

	default:
		return datum{}, violation(src, "unexpected value %T", v)
	}
}

// call invokes a host method with evaluated arguments. A trailing error
// result is returned as a CallError.
func (a *applier) call(src langtree.SourceData, obj reflect.Value, method, name string, argValues []objectgraph.Value) (datum, error) {
	fn, mt, ok := a.m.table(obj.Elem().Type()).method(obj, method)
	if !ok {
		return datum{}, violation(src, "no method %s for function %s", method, name)
	}

	// mt includes the receiver as In(0).
	args := make([]reflect.Value, len(argValues))
	for i, av := range argValues {
		d, err := a.eval(src, av)
		if err != nil {
			return datum{}, err
		}
		in := i + 1
		var pt reflect.Type
		switch {
		case mt.IsVariadic() && in >= mt.NumIn()-1:
			pt = mt.In(mt.NumIn() - 1).Elem()
		case in < mt.NumIn():
			pt = mt.In(in)
		default:
			return datum{}, violation(src, "too many arguments for %s", name)
		}
		gv, err := toGo(d, pt)
		if err != nil {
			return datum{}, &InvariantViolation{Source: src, Detail: fmt.Sprintf("argument %d of %s", i+1, name), Err: err}
		}
		args[i] = gv
	}

	out := fn.Call(args)
	if n := len(out); n > 0 && mt.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return datum{}, &CallError{Source: src, Function: name, Err: err}
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return datum{null: true}, nil
	}
	d, err := fromGo(out[0])
	if err != nil {
		return datum{}, &InvariantViolation{Source: src, Detail: "result of " + name, Err: err}
	}
	return d, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func violation(src langtree.SourceData, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Source: src, Detail: fmt.Sprintf(format, args...)}
}
