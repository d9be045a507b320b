package tracer

import (
	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
)

// Usage says how an unassigned property was read.
type Usage int

const (
	UsedAsAssignmentValue Usage = iota
	UsedAsCallArgument
	UsedAsReceiver
)

func (u Usage) String() string {
	switch u {
	case UsedAsAssignmentValue:
		return "assigned value"
	case UsedAsCallArgument:
		return "call argument"
	case UsedAsReceiver:
		return "receiver"
	default:
		return "unknown usage"
	}
}

// Element is one entry of a trace.
type Element interface {
	Source() langtree.SourceData
	traceElement()
}

// RecordedAssignment is an assignment together with the value it stores.
// Value is nil when the assigned expression depends on an unassigned
// property.
type RecordedAssignment struct {
	Lhs        *resolution.PropertyReference
	Value      resolution.ObjectOrigin
	SourceData langtree.SourceData
}

// UnassignedValueUsed is a read of a property that had no value yet.
type UnassignedValueUsed struct {
	Access     *resolution.PropertyReference
	Usage      Usage
	SourceData langtree.SourceData
}

func (e *RecordedAssignment) Source() langtree.SourceData  { return e.SourceData }
func (e *UnassignedValueUsed) Source() langtree.SourceData { return e.SourceData }

func (*RecordedAssignment) traceElement()  {}
func (*UnassignedValueUsed) traceElement() {}

// Trace is the ordered outcome of tracing one resolution result.
type Trace struct {
	Elements []Element

	values map[resolution.ObjectOrigin]resolution.ObjectOrigin
}

// Assignments returns the recorded assignments in source order.
func (t *Trace) Assignments() []*RecordedAssignment {
	var out []*RecordedAssignment
	for _, e := range t.Elements {
		if a, ok := e.(*RecordedAssignment); ok {
			out = append(out, a)
		}
	}
	return out
}

// UnassignedUsages returns the reads of unassigned properties in source
// order.
func (t *Trace) UnassignedUsages() []*UnassignedValueUsed {
	var out []*UnassignedValueUsed
	for _, e := range t.Elements {
		if u, ok := e.(*UnassignedValueUsed); ok {
			out = append(out, u)
		}
	}
	return out
}

// ValueOf returns what o evaluates to at the point it appears in the
// script. Writable property reads are replaced by the value assigned
// before them, also inside call arguments and receivers. The result holds
// no writable property reference. It reports false for origins that were
// never traced or that depend on an unassigned property.
func (t *Trace) ValueOf(o resolution.ObjectOrigin) (resolution.ObjectOrigin, bool) {
	v, ok := t.values[o]
	return v, ok && v != nil
}
