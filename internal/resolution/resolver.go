package resolution

import (
	"context"
	"fmt"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
)

// Resolver binds language trees to schemas. It keeps no state between
// calls.
type Resolver struct{}

// New creates a resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve resolves the statements of top against s. It always returns a
// result; problems are in Result.Errors.
func (Resolver) Resolve(ctx context.Context, s *schema.AnalysisSchema, top *langtree.Block) *Result {
	logger := ctxlog.FromContext(ctx)

	r := &resolver{schema: s}
	receiver := &TopLevelReceiver{ReceiverType: schema.ClassRef(s.TopLevelReceiverType.Name)}
	if top != nil {
		receiver.SourceData = top.SourceData
	}
	result := &Result{TopLevelReceiver: receiver}

	if top != nil {
		sc := &scope{receiver: receiver, class: s.TopLevelReceiverType}
		result.Operations = r.block(sc, top)
	}
	result.Errors = r.errors

	logger.Debug("Resolution complete.", "operations", len(result.Operations), "errors", len(result.Errors))
	return result
}

type resolver struct {
	schema *schema.AnalysisSchema
	errors []*Error
	nextID int
}

// scope is one implicit receiver; lookups walk from the innermost scope
// outward.
type scope struct {
	receiver ObjectOrigin
	class    *schema.DataClass
	parent   *scope
}

func (r *resolver) fail(kind ErrorKind, el langtree.Element, detail string, suggestions ...string) {
	r.errors = append(r.errors, &Error{Kind: kind, Element: el, Detail: detail, Suggestions: suggestions})
}

func (r *resolver) newID() int {
	r.nextID++
	return r.nextID
}

func (r *resolver) block(sc *scope, b *langtree.Block) []Operation {
	var ops []Operation
	for _, st := range b.Statements {
		switch s := st.(type) {
		case *langtree.Assignment:
			ops = r.assignment(sc, s, ops)
		case *langtree.FunctionCall:
			ops = r.statementCall(sc, s, ops)
		}
	}
	return ops
}

// assignment appends the operations of a. When it fails, additions made
// while resolving its value are dropped along with it.
func (r *resolver) assignment(sc *scope, a *langtree.Assignment, ops []Operation) []Operation {
	before := len(ops)
	lhs, lhsOK := r.assignmentTarget(sc, a.Lhs)
	rhs, rhsOK := r.expr(sc, a.Rhs, &ops)
	if !rhsOK {
		r.fail(UnresolvedAssignmentRhs, a.Rhs, "")
	}
	if !lhsOK || !rhsOK {
		return ops[:before]
	}

	switch {
	case rhs.Type().IsUnit():
		r.fail(UnitAssignment, a, fmt.Sprintf("%s returns nothing", rhs))
		return ops[:before]
	case !assignable(lhs.Property.Type, rhs):
		r.fail(AssignmentTypeMismatch, a,
			fmt.Sprintf("expected %s, got %s", lhs.Property.Type, describe(rhs)))
		return ops[:before]
	}

	return append(ops, &AssignmentRecord{Lhs: lhs, Rhs: rhs, SourceData: a.SourceData})
}

func (r *resolver) assignmentTarget(sc *scope, pa *langtree.PropertyAccess) (*PropertyReference, bool) {
	var receiver ObjectOrigin
	var prop *schema.Property

	if pa.Receiver == nil {
		receiver, prop = lookupProperty(sc, pa.Name)
		if prop == nil {
			r.fail(UnresolvedAssignmentLhs, pa, pa.Name, suggest(pa.Name, visibleNames(sc))...)
			return nil, false
		}
	} else {
		var ok bool
		if receiver, ok = r.expr(sc, pa.Receiver, nil); !ok {
			r.fail(UnresolvedAssignmentLhs, pa, pa.String())
			return nil, false
		}
		class, ok := r.schema.ClassOf(receiver.Type())
		if !ok {
			r.fail(UnresolvedAssignmentLhs, pa, fmt.Sprintf("%s has no properties", receiver.Type()))
			return nil, false
		}
		if prop, ok = class.Property(pa.Name); !ok {
			r.fail(UnresolvedAssignmentLhs, pa, pa.String(), suggest(pa.Name, propertyNames(class))...)
			return nil, false
		}
	}

	if prop.ReadOnly {
		r.fail(ReadOnlyPropertyAssignment, pa, prop.Name)
		return nil, false
	}
	return &PropertyReference{Receiver: receiver, Property: prop, SourceData: pa.SourceData}, true
}

// expr resolves a value. Add-and-configure calls in value position append
// their addition to ops; ops is nil where additions cannot happen.
func (r *resolver) expr(sc *scope, e langtree.Expr, ops *[]Operation) (ObjectOrigin, bool) {
	switch v := e.(type) {
	case *langtree.Literal:
		return &ConstantValue{Value: v.Value, SourceData: v.SourceData}, true
	case *langtree.Null:
		return &NullValue{SourceData: v.SourceData}, true
	case *langtree.PropertyAccess:
		return r.propertyAccess(sc, v, ops)
	case *langtree.FunctionCall:
		return r.valueCall(sc, v, ops)
	default:
		r.fail(UnresolvedReference, e, fmt.Sprintf("unexpected element %T", e))
		return nil, false
	}
}

func (r *resolver) propertyAccess(sc *scope, pa *langtree.PropertyAccess, ops *[]Operation) (ObjectOrigin, bool) {
	if pa.Receiver == nil {
		receiver, prop := lookupProperty(sc, pa.Name)
		if prop == nil {
			r.fail(UnresolvedReference, pa, pa.Name, suggest(pa.Name, visibleNames(sc))...)
			return nil, false
		}
		return &PropertyReference{Receiver: receiver, Property: prop, SourceData: pa.SourceData}, true
	}

	receiver, ok := r.expr(sc, pa.Receiver, ops)
	if !ok {
		return nil, false
	}
	class, ok := r.schema.ClassOf(receiver.Type())
	if !ok {
		r.fail(NonReadableProperty, pa, fmt.Sprintf("%s has no property %q", receiver.Type(), pa.Name))
		return nil, false
	}
	prop, ok := class.Property(pa.Name)
	if !ok {
		r.fail(UnresolvedReference, pa, pa.String(), suggest(pa.Name, propertyNames(class))...)
		return nil, false
	}
	return &PropertyReference{Receiver: receiver, Property: prop, SourceData: pa.SourceData}, true
}

func (r *resolver) arguments(sc *scope, call *langtree.FunctionCall, ops *[]Operation) ([]ObjectOrigin, bool) {
	args := make([]ObjectOrigin, 0, len(call.Args))
	ok := true
	for _, a := range call.Args {
		origin, argOK := r.expr(sc, a, ops)
		if !argOK {
			ok = false
			continue
		}
		args = append(args, origin)
	}
	if !ok {
		r.fail(UnresolvedFunctionCallArguments, call, call.Name)
	}
	return args, ok
}

func (r *resolver) valueCall(sc *scope, call *langtree.FunctionCall, ops *[]Operation) (ObjectOrigin, bool) {
	args, ok := r.arguments(sc, call, ops)
	if !ok {
		return nil, false
	}
	chosen, ok := r.selectFunction(sc, call, args)
	if !ok {
		return nil, false
	}

	if chosen.ext != nil {
		return r.externalInvocation(call, chosen, args)
	}

	inv := &FunctionInvocation{
		ID:         r.newID(),
		Receiver:   chosen.receiver,
		Function:   chosen.fn,
		Args:       args,
		SourceData: call.SourceData,
	}
	switch s := chosen.fn.Semantics.(type) {
	case schema.Pure:
		return inv, true
	case schema.AddAndConfigure:
		if s.ConfigureBlock == schema.BlockRequired {
			r.fail(MissingConfigureLambda, call, call.Name)
			return nil, false
		}
		if ops == nil {
			r.fail(UnresolvedReference, call, fmt.Sprintf("%s cannot be called here", call.Name))
			return nil, false
		}
		*ops = append(*ops, &DataAddition{Container: chosen.receiver, Object: inv, SourceData: call.SourceData})
		return inv, true
	default:
		r.fail(MissingConfigureLambda, call, call.Name)
		return nil, false
	}
}

func (r *resolver) externalInvocation(call *langtree.FunctionCall, chosen candidate, args []ObjectOrigin) (ObjectOrigin, bool) {
	ret, err := chosen.ext.ReturnType(args)
	if err != nil {
		r.fail(UnresolvedFunctionCallSignature, call, fmt.Sprintf("%s: %v", call.Name, err))
		return nil, false
	}
	return &ExternalInvocation{
		ID:         r.newID(),
		Function:   chosen.ext.fn,
		Args:       args,
		ReturnType: ret,
		SourceData: call.SourceData,
	}, true
}

func (r *resolver) statementCall(sc *scope, call *langtree.FunctionCall, ops []Operation) []Operation {
	args, ok := r.arguments(sc, call, &ops)
	if !ok {
		return ops
	}
	chosen, ok := r.selectFunction(sc, call, args)
	if !ok {
		return ops
	}
	if chosen.ext != nil {
		r.fail(DanglingPureExpression, call, call.Name)
		return ops
	}

	hasBody := call.Configure != nil && len(call.Configure.Statements) > 0

	switch s := chosen.fn.Semantics.(type) {
	case schema.Pure:
		r.fail(DanglingPureExpression, call, call.Name)
		return ops

	case schema.AddAndConfigure:
		inv := &FunctionInvocation{
			ID:         r.newID(),
			Receiver:   chosen.receiver,
			Function:   chosen.fn,
			Args:       args,
			SourceData: call.SourceData,
		}
		addition := &DataAddition{Container: chosen.receiver, Object: inv, SourceData: call.SourceData}
		if hasBody {
			class, isClass := r.schema.ClassOf(chosen.fn.ReturnType)
			if s.ConfigureBlock == schema.BlockNotAllowed || !isClass {
				r.fail(UnusedConfigureLambda, call.Configure, call.Name)
				return ops
			}
			addition.Nested = r.block(&scope{receiver: inv, class: class, parent: sc}, call.Configure)
		}
		return append(ops, addition)

	case schema.AccessAndConfigure:
		owner, _ := r.schema.ClassOf(chosen.receiver.Type())
		var prop *schema.Property
		if owner != nil {
			prop, _ = owner.Property(s.Accessor)
		}
		class, isClass := r.schema.ClassOf(chosen.fn.ReturnType)
		if prop == nil || !isClass {
			r.fail(UnresolvedReference, call, fmt.Sprintf("accessor %q of %s", s.Accessor, call.Name))
			return ops
		}
		accessed := &PropertyReference{Receiver: chosen.receiver, Property: prop, SourceData: call.SourceData}
		access := &NestedObjectAccess{
			Container:  chosen.receiver,
			Accessed:   accessed,
			Function:   chosen.fn,
			SourceData: call.SourceData,
		}
		if call.Configure != nil {
			access.Nested = r.block(&scope{receiver: accessed, class: class, parent: sc}, call.Configure)
		}
		return append(ops, access)

	default:
		r.fail(UnresolvedReference, call, fmt.Sprintf("unknown semantics of %s", call.Name))
		return ops
	}
}

func lookupProperty(sc *scope, name string) (ObjectOrigin, *schema.Property) {
	for s := sc; s != nil; s = s.parent {
		if p, ok := s.class.Property(name); ok {
			return s.receiver, p
		}
	}
	return nil, nil
}

func visibleNames(sc *scope) []string {
	seen := make(map[string]struct{})
	var out []string
	for s := sc; s != nil; s = s.parent {
		for _, n := range s.class.MemberNames() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

func propertyNames(c *schema.DataClass) []string {
	out := make([]string, 0, len(c.Properties))
	for _, p := range c.Properties {
		out = append(out, p.Name)
	}
	return out
}
