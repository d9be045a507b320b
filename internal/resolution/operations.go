package resolution

import (
	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
)

// Operation is one resolved statement. Operations that open a configuring
// block carry the operations of that block as Nested.
type Operation interface {
	Source() langtree.SourceData
	operation()
}

// AssignmentRecord stores Rhs into Lhs.
type AssignmentRecord struct {
	Lhs        *PropertyReference
	Rhs        ObjectOrigin
	SourceData langtree.SourceData
}

// DataAddition creates Object by an add-and-configure call on Container and
// configures it with Nested.
type DataAddition struct {
	Container  ObjectOrigin
	Object     *FunctionInvocation
	Nested     []Operation
	SourceData langtree.SourceData
}

// NestedObjectAccess configures the object Container owns through the
// Accessed property.
type NestedObjectAccess struct {
	Container  ObjectOrigin
	Accessed   *PropertyReference
	Function   *schema.Function
	Nested     []Operation
	SourceData langtree.SourceData
}

func (o *AssignmentRecord) Source() langtree.SourceData   { return o.SourceData }
func (o *DataAddition) Source() langtree.SourceData       { return o.SourceData }
func (o *NestedObjectAccess) Source() langtree.SourceData { return o.SourceData }

func (*AssignmentRecord) operation()   {}
func (*DataAddition) operation()       {}
func (*NestedObjectAccess) operation() {}

// Result is the outcome of resolving one language tree.
type Result struct {
	TopLevelReceiver *TopLevelReceiver
	Operations       []Operation
	Errors           []*Error
}

// Walk visits all operations depth first, a parent before its nested
// operations, which is source order.
func (r *Result) Walk(fn func(Operation)) {
	walk(r.Operations, fn)
}

func walk(ops []Operation, fn func(Operation)) {
	for _, op := range ops {
		fn(op)
		switch v := op.(type) {
		case *DataAddition:
			walk(v.Nested, fn)
		case *NestedObjectAccess:
			walk(v.Nested, fn)
		}
	}
}

// Assignments returns every assignment in source order.
func (r *Result) Assignments() []*AssignmentRecord {
	var out []*AssignmentRecord
	r.Walk(func(op Operation) {
		if a, ok := op.(*AssignmentRecord); ok {
			out = append(out, a)
		}
	})
	return out
}

// Additions returns every data addition in source order.
func (r *Result) Additions() []*DataAddition {
	var out []*DataAddition
	r.Walk(func(op Operation) {
		if a, ok := op.(*DataAddition); ok {
			out = append(out, a)
		}
	})
	return out
}
