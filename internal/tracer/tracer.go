package tracer

import (
	"context"
	"strconv"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
)

// Tracer walks resolution results. It keeps no state between calls.
type Tracer struct{}

// New creates a tracer.
func New() *Tracer {
	return &Tracer{}
}

// Trace processes the operations of r in source order.
func (Tracer) Trace(ctx context.Context, r *resolution.Result) *Trace {
	logger := ctxlog.FromContext(ctx)

	t := &tracer{
		trace:       &Trace{values: make(map[resolution.ObjectOrigin]resolution.ObjectOrigin)},
		assigned:    make(map[string]slot),
		invocations: make(map[int]resolution.ObjectOrigin),
	}
	r.Walk(t.operation)

	logger.Debug("Assignments traced.",
		"assignments", len(t.trace.Assignments()),
		"unassigned_reads", len(t.trace.UnassignedUsages()))
	return t.trace
}

// slot is the state of one property of one receiver instance. A nil value
// means the property was assigned from something unassigned, so reading it
// is as bad as reading a property never assigned.
type slot struct {
	value resolution.ObjectOrigin
}

type tracer struct {
	trace       *Trace
	assigned    map[string]slot
	invocations map[int]resolution.ObjectOrigin
}

func (t *tracer) operation(op resolution.Operation) {
	switch v := op.(type) {
	case *resolution.AssignmentRecord:
		value := t.read(v.Rhs, UsedAsAssignmentValue)
		if key, ok := t.receiverKey(v.Lhs.Receiver, UsedAsReceiver); ok {
			t.assigned[key+"."+v.Lhs.Property.Name] = slot{value: value}
		}
		t.trace.Elements = append(t.trace.Elements, &RecordedAssignment{
			Lhs:        v.Lhs,
			Value:      value,
			SourceData: v.SourceData,
		})
	case *resolution.DataAddition:
		t.read(v.Object, UsedAsCallArgument)
	case *resolution.NestedObjectAccess:
		t.read(v.Accessed, UsedAsReceiver)
	}
}

// read returns the value o has at this point, or nil when it depends on an
// unassigned property. Each unassigned read is reported once.
func (t *tracer) read(o resolution.ObjectOrigin, usage Usage) resolution.ObjectOrigin {
	if v, seen := t.trace.values[o]; seen {
		return v
	}
	v := t.evaluate(o, usage)
	t.trace.values[o] = v
	return v
}

func (t *tracer) evaluate(o resolution.ObjectOrigin, usage Usage) resolution.ObjectOrigin {
	switch v := o.(type) {
	case *resolution.TopLevelReceiver, *resolution.ConstantValue, *resolution.NullValue:
		return o

	case *resolution.PropertyReference:
		if v.Property.ReadOnly {
			receiver := t.read(v.Receiver, UsedAsReceiver)
			if receiver == nil {
				return nil
			}
			return &resolution.PropertyReference{Receiver: receiver, Property: v.Property, SourceData: v.SourceData}
		}
		key, ok := t.receiverKey(v.Receiver, UsedAsReceiver)
		if !ok {
			return nil
		}
		s, assigned := t.assigned[key+"."+v.Property.Name]
		if !assigned || s.value == nil {
			t.unassigned(v, usage)
			return nil
		}
		return s.value

	case *resolution.FunctionInvocation:
		if done, ok := t.invocations[v.ID]; ok {
			return done
		}
		receiver := t.read(v.Receiver, UsedAsReceiver)
		args, ok := t.arguments(v.Args)
		var out resolution.ObjectOrigin
		if receiver != nil && ok {
			out = &resolution.FunctionInvocation{
				ID:         v.ID,
				Receiver:   receiver,
				Function:   v.Function,
				Args:       args,
				SourceData: v.SourceData,
			}
		}
		t.invocations[v.ID] = out
		return out

	case *resolution.ExternalInvocation:
		if done, ok := t.invocations[v.ID]; ok {
			return done
		}
		args, ok := t.arguments(v.Args)
		var out resolution.ObjectOrigin
		if ok {
			out = &resolution.ExternalInvocation{
				ID:         v.ID,
				Function:   v.Function,
				Args:       args,
				ReturnType: v.ReturnType,
				SourceData: v.SourceData,
			}
		}
		t.invocations[v.ID] = out
		return out

	default:
		return nil
	}
}

func (t *tracer) arguments(args []resolution.ObjectOrigin) ([]resolution.ObjectOrigin, bool) {
	out := make([]resolution.ObjectOrigin, len(args))
	ok := true
	for i, a := range args {
		out[i] = t.read(a, UsedAsCallArgument)
		if out[i] == nil {
			ok = false
		}
	}
	return out, ok
}

// receiverKey names the object instance o denotes. Receivers that are
// writable properties are followed through their assigned value.
func (t *tracer) receiverKey(o resolution.ObjectOrigin, usage Usage) (string, bool) {
	switch v := o.(type) {
	case *resolution.TopLevelReceiver:
		return "top", true
	case *resolution.FunctionInvocation:
		return "call#" + strconv.Itoa(v.ID), true
	case *resolution.PropertyReference:
		if v.Property.ReadOnly {
			key, ok := t.receiverKey(v.Receiver, UsedAsReceiver)
			return key + "." + v.Property.Name, ok
		}
		value := t.read(v, usage)
		if value == nil {
			return "", false
		}
		return t.receiverKey(value, usage)
	default:
		return "", false
	}
}

func (t *tracer) unassigned(ref *resolution.PropertyReference, usage Usage) {
	t.trace.Elements = append(t.trace.Elements, &UnassignedValueUsed{
		Access:     ref,
		Usage:      usage,
		SourceData: ref.SourceData,
	})
}
