package schema

import (
	"reflect"

	"github.com/zclconf/go-cty/cty/function"
)

// AnalysisSchema is the immutable description of everything a script can
// reference in one evaluation context.
type AnalysisSchema struct {
	TopLevelReceiverType *DataClass
	ExternalFunctions    []*ExternalFunction

	classes []*DataClass
	byName  map[string]*DataClass
}

// New assembles a schema. Classes keep the order they are given in, which is
// the declared order used for deterministic tie-breaking.
func New(topLevel *DataClass, classes []*DataClass, externals []*ExternalFunction) *AnalysisSchema {
	s := &AnalysisSchema{
		TopLevelReceiverType: topLevel,
		ExternalFunctions:    externals,
		byName:               make(map[string]*DataClass, len(classes)),
	}
	for _, c := range classes {
		if _, dup := s.byName[c.Name]; dup {
			continue
		}
		s.classes = append(s.classes, c)
		s.byName[c.Name] = c
	}
	return s
}

// DataClasses returns all classes in declared order.
func (s *AnalysisSchema) DataClasses() []*DataClass {
	return s.classes
}

// DataClass looks a class up by name.
func (s *AnalysisSchema) DataClass(name string) (*DataClass, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// ClassOf returns the data class a type reference points at.
func (s *AnalysisSchema) ClassOf(t TypeRef) (*DataClass, bool) {
	if !t.IsClass() {
		return nil, false
	}
	return s.DataClass(t.Class)
}

// ExternalFunctionsNamed returns the external functions with the given name
// in declared order.
func (s *AnalysisSchema) ExternalFunctionsNamed(name string) []*ExternalFunction {
	var out []*ExternalFunction
	for _, f := range s.ExternalFunctions {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// DataClass is a configurable type.
type DataClass struct {
	Name            string
	Properties      []*Property
	MemberFunctions []*Function

	// GoType is the host type the class was derived from, if any. The
	// materializer binds members against it.
	GoType reflect.Type
}

// Property looks a property up by name.
func (c *DataClass) Property(name string) (*Property, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// FunctionsNamed returns the member functions with the given name in
// declared order.
func (c *DataClass) FunctionsNamed(name string) []*Function {
	var out []*Function
	for _, f := range c.MemberFunctions {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// MemberNames lists property and function names, properties first.
func (c *DataClass) MemberNames() []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(n string) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	for _, p := range c.Properties {
		add(p.Name)
	}
	for _, f := range c.MemberFunctions {
		add(f.Name)
	}
	return names
}

// Property is a named, typed slot on a data class.
type Property struct {
	Name     string
	Type     TypeRef
	ReadOnly bool

	// GoField is the exported struct field backing the property.
	GoField string
}

// Parameter is one formal parameter of a function.
type Parameter struct {
	Name     string
	Type     TypeRef
	Optional bool
	Variadic bool
	Nullable bool
}

// Function is a member function of a data class.
type Function struct {
	Name       string
	Receiver   string
	Parameters []*Parameter
	ReturnType TypeRef
	Semantics  Semantics

	// GoMethod is the method on the receiver's Go type, empty for
	// synthesized access-and-configure functions.
	GoMethod string
}

// ExternalFunction is a pure function callable from any scope, implemented
// by a cty function.
type ExternalFunction struct {
	Name       string
	Impl       function.Function
	Parameters []*Parameter
}

// NewExternalFunction derives the parameter list from the cty function
// signature.
func NewExternalFunction(name string, impl function.Function) *ExternalFunction {
	ef := &ExternalFunction{Name: name, Impl: impl}
	for _, p := range impl.Params() {
		ef.Parameters = append(ef.Parameters, &Parameter{
			Name:     p.Name,
			Type:     Primitive(p.Type),
			Nullable: p.AllowNull,
		})
	}
	if vp := impl.VarParam(); vp != nil {
		ef.Parameters = append(ef.Parameters, &Parameter{
			Name:     vp.Name,
			Type:     Primitive(vp.Type),
			Optional: true,
			Variadic: true,
			Nullable: vp.AllowNull,
		})
	}
	return ef
}

// Arity returns the minimum number of arguments and the maximum, which is
// -1 for variadic signatures.
func Arity(params []*Parameter) (int, int) {
	lo, hi := 0, 0
	for _, p := range params {
		if p.Variadic {
			return lo, -1
		}
		if !p.Optional {
			lo++
		}
		hi++
	}
	return lo, hi
}

// ParameterFor returns the parameter that receives the argument at index
// i, accounting for a trailing variadic parameter.
func ParameterFor(params []*Parameter, i int) (*Parameter, bool) {
	if i < len(params) {
		return params[i], true
	}
	if n := len(params); n > 0 && params[n-1].Variadic {
		return params[n-1], true
	}
	return nil, false
}
