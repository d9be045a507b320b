package objectgraph

import (
	"fmt"

	"github.com/Uchennaokeke444/Gradle/internal/resolution"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/tracer"
)

// Reflect builds the reflection of the top-level receiver. It expects a
// result without resolution errors and a trace without unassigned reads;
// anything else is reported as an error.
func Reflect(r *resolution.Result, tr *tracer.Trace, s *schema.AnalysisSchema) (*ObjectReflection, error) {
	b := &builder{trace: tr, schema: s}
	ops, err := b.operations(r.Operations)
	if err != nil {
		return nil, err
	}
	return &ObjectReflection{
		Receiver:   ObjectRef{ID: TopLevelID},
		Class:      s.TopLevelReceiverType,
		Operations: ops,
	}, nil
}

type builder struct {
	trace  *tracer.Trace
	schema *schema.AnalysisSchema
}

func (b *builder) operations(ops []resolution.Operation) ([]Operation, error) {
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		converted, err := b.operation(op)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Source(), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func (b *builder) operation(op resolution.Operation) (Operation, error) {
	switch v := op.(type) {
	case *resolution.AssignmentRecord:
		receiver, err := b.value(v.Lhs.Receiver)
		if err != nil {
			return nil, err
		}
		traced, ok := b.trace.ValueOf(v.Rhs)
		if !ok {
			return nil, fmt.Errorf("no traced value for %s", v.Rhs)
		}
		value, err := b.value(traced)
		if err != nil {
			return nil, err
		}
		return &SetProperty{Receiver: receiver, Property: v.Lhs.Property, Value: value, SourceData: v.SourceData}, nil

	case *resolution.DataAddition:
		receiver, err := b.value(v.Container)
		if err != nil {
			return nil, err
		}
		traced, ok := b.trace.ValueOf(v.Object)
		if !ok {
			return nil, fmt.Errorf("no traced value for %s", v.Object)
		}
		inv, ok := traced.(*resolution.FunctionInvocation)
		if !ok {
			return nil, fmt.Errorf("traced %s is %T, not an invocation", v.Object, traced)
		}
		args, err := b.values(inv.Args)
		if err != nil {
			return nil, err
		}
		out := &InvokeFunction{
			Receiver:   receiver,
			Function:   inv.Function,
			ID:         inv.ID,
			Args:       args,
			SourceData: v.SourceData,
		}
		if class, isClass := b.schema.ClassOf(inv.Function.ReturnType); isClass {
			nested, err := b.operations(v.Nested)
			if err != nil {
				return nil, err
			}
			out.Configure = &ObjectReflection{Receiver: ObjectRef{ID: inv.ID}, Class: class, Operations: nested}
		}
		return out, nil

	case *resolution.NestedObjectAccess:
		receiver, err := b.value(v.Container)
		if err != nil {
			return nil, err
		}
		accessed, err := b.value(v.Accessed)
		if err != nil {
			return nil, err
		}
		class, ok := b.schema.ClassOf(v.Accessed.Property.Type)
		if !ok {
			return nil, fmt.Errorf("property %s is not an object", v.Accessed.Property.Name)
		}
		nested, err := b.operations(v.Nested)
		if err != nil {
			return nil, err
		}
		return &Nest{
			Receiver:   receiver,
			Accessor:   v.Accessed.Property,
			Object:     &ObjectReflection{Receiver: accessed, Class: class, Operations: nested},
			SourceData: v.SourceData,
		}, nil

	default:
		return nil, fmt.Errorf("unexpected operation %T", op)
	}
}

func (b *builder) values(origins []resolution.ObjectOrigin) ([]Value, error) {
	out := make([]Value, len(origins))
	for i, o := range origins {
		v, err := b.value(o)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// value converts an origin. Writable property reads go through the trace.
func (b *builder) value(o resolution.ObjectOrigin) (Value, error) {
	switch v := o.(type) {
	case *resolution.TopLevelReceiver:
		return ObjectRef{ID: TopLevelID}, nil
	case *resolution.ConstantValue:
		return Constant{Value: v.Value}, nil
	case *resolution.NullValue:
		return Null{}, nil

	case *resolution.PropertyReference:
		if !v.Property.ReadOnly {
			traced, ok := b.trace.ValueOf(v)
			if !ok {
				return nil, fmt.Errorf("no traced value for %s", v)
			}
			return b.value(traced)
		}
		receiver, err := b.value(v.Receiver)
		if err != nil {
			return nil, err
		}
		return HostProperty{Receiver: receiver, Property: v.Property}, nil

	case *resolution.FunctionInvocation:
		if _, pure := v.Function.Semantics.(schema.Pure); !pure {
			return ObjectRef{ID: v.ID}, nil
		}
		receiver, err := b.value(v.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := b.values(v.Args)
		if err != nil {
			return nil, err
		}
		return PureCall{Receiver: receiver, Function: v.Function, Args: args}, nil

	case *resolution.ExternalInvocation:
		args, err := b.values(v.Args)
		if err != nil {
			return nil, err
		}
		return ExternalCall{Function: v.Function, Args: args}, nil

	default:
		return nil, fmt.Errorf("unexpected value %T", o)
	}
}
