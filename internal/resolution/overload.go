package resolution

import (
	"fmt"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// candidate is one function a call may bind to. Exactly one of fn and ext
// is set.
type candidate struct {
	fn       *schema.Function
	receiver ObjectOrigin
	ext      *external
}

func (c candidate) params() []*schema.Parameter {
	if c.ext != nil {
		return c.ext.fn.Parameters
	}
	return c.fn.Parameters
}

func (c candidate) signature() string {
	parts := make([]string, 0, len(c.params()))
	for _, p := range c.params() {
		s := p.Type.String()
		if p.Variadic {
			s += "..."
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type external struct {
	fn *schema.ExternalFunction
}

// ReturnType asks the cty function for its result type given the static
// argument types.
func (e *external) ReturnType(args []ObjectOrigin) (schema.TypeRef, error) {
	types := make([]cty.Type, len(args))
	for i, a := range args {
		t := a.Type()
		switch t.Kind {
		case schema.KindPrimitive:
			types[i] = t.Primitive
		case schema.KindNull:
			types[i] = cty.DynamicPseudoType
		default:
			return schema.TypeRef{}, fmt.Errorf("argument %d: %s is not a primitive value", i+1, t)
		}
	}
	ret, err := e.fn.Impl.ReturnType(types)
	if err != nil {
		return schema.TypeRef{}, err
	}
	return schema.Primitive(ret), nil
}

// candidates collects the functions visible under name. The innermost
// receiver declaring the name shadows outer ones; external functions are
// consulted last.
func (r *resolver) candidates(sc *scope, name string) []candidate {
	for s := sc; s != nil; s = s.parent {
		fns := s.class.FunctionsNamed(name)
		if len(fns) == 0 {
			continue
		}
		out := make([]candidate, len(fns))
		for i, f := range fns {
			out[i] = candidate{fn: f, receiver: s.receiver}
		}
		return out
	}
	var out []candidate
	for _, f := range r.schema.ExternalFunctionsNamed(name) {
		out = append(out, candidate{ext: &external{fn: f}})
	}
	return out
}

func (r *resolver) externalNames() []string {
	var out []string
	for _, f := range r.schema.ExternalFunctions {
		out = append(out, f.Name)
	}
	return out
}

// selectFunction picks the overload for a call. Applicable candidates are
// narrowed to exact arity, then to exact argument types. A remaining tie
// between identical signatures goes to the first declared; any other tie is
// ambiguous, even when declared order could pick one. A null argument
// matches no parameter type exactly, so f(string) and f(bool) called with
// null is ambiguous rather than bound to the first declared f.
func (r *resolver) selectFunction(sc *scope, call *langtree.FunctionCall, args []ObjectOrigin) (candidate, bool) {
	all := r.candidates(sc, call.Name)
	if len(all) == 0 {
		names := append(visibleNames(sc), r.externalNames()...)
		r.fail(UnresolvedReference, call, call.Name, suggest(call.Name, names)...)
		return candidate{}, false
	}

	var applicable []candidate
	for _, c := range all {
		if applies(c.params(), args) {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) == 0 {
		r.fail(UnresolvedFunctionCallSignature, call,
			fmt.Sprintf("no overload of %s accepts %s; have %s", call.Name, argSignature(args), signatures(all)))
		return candidate{}, false
	}

	applicable = narrow(applicable, func(c candidate) bool { return exactArity(c.params(), len(args)) })
	applicable = narrow(applicable, func(c candidate) bool { return exactTypes(c.params(), args) })

	if len(applicable) == 1 {
		return applicable[0], true
	}
	first := applicable[0].signature()
	for _, c := range applicable[1:] {
		if c.signature() != first {
			r.fail(AmbiguousFunctions, call,
				fmt.Sprintf("%s%s matches %s", call.Name, argSignature(args), signatures(applicable)))
			return candidate{}, false
		}
	}
	return applicable[0], true
}

// narrow keeps the candidates satisfying keep, unless none do.
func narrow(cs []candidate, keep func(candidate) bool) []candidate {
	var out []candidate
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return cs
	}
	return out
}

func applies(params []*schema.Parameter, args []ObjectOrigin) bool {
	lo, hi := schema.Arity(params)
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return false
	}
	for i, a := range args {
		p, ok := schema.ParameterFor(params, i)
		if !ok {
			return false
		}
		if a.Type().Kind == schema.KindNull {
			if !p.Nullable {
				return false
			}
			continue
		}
		if !assignable(p.Type, a) {
			return false
		}
	}
	return true
}

// assignable reports whether v may be stored in a slot of type slot.
// Constants are checked by value so that a literal outside the range of the
// host field is rejected here and not when the target is configured.
func assignable(slot schema.TypeRef, v ObjectOrigin) bool {
	if c, ok := v.(*ConstantValue); ok {
		return slot.AcceptsValue(c.Value)
	}
	return slot.AssignableFrom(v.Type())
}

// describe names v for type errors: the value of a constant, the type of
// anything else.
func describe(v ObjectOrigin) string {
	if c, ok := v.(*ConstantValue); ok {
		return fmt.Sprintf("%s %s", c.Type(), c)
	}
	return v.Type().String()
}

func exactArity(params []*schema.Parameter, n int) bool {
	for _, p := range params {
		if p.Variadic || p.Optional {
			return false
		}
	}
	return len(params) == n
}

func exactTypes(params []*schema.Parameter, args []ObjectOrigin) bool {
	for i, a := range args {
		p, _ := schema.ParameterFor(params, i)
		if p == nil || !p.Type.Equals(a.Type()) {
			return false
		}
	}
	return true
}

func argSignature(args []ObjectOrigin) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type().String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func signatures(cs []candidate) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.signature()
	}
	return strings.Join(parts, ", ")
}
