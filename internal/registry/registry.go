package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty/function"
)

// Module is the interface that all host modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the top-level receiver types and external functions for a
// single application instance.
type Registry struct {
	roots     map[schema.EvaluationContext]reflect.Type
	externals []*schema.ExternalFunction
}

// New creates and initializes a new Registry instance and lets every module
// register itself.
func New(modules ...Module) *Registry {
	r := &Registry{
		roots: make(map[schema.EvaluationContext]reflect.Type),
	}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterRoot binds an evaluation context to the Go type of its top-level
// receiver.
func (r *Registry) RegisterRoot(ctx schema.EvaluationContext, rootType reflect.Type) {
	if ctx == schema.UnknownScript {
		panic("cannot register a root for the unknown script context")
	}
	if existing, exists := r.roots[ctx]; exists {
		panic(fmt.Sprintf("context '%s' already bound to %s", ctx, existing))
	}
	slog.Debug("Registering top-level receiver.", "context", ctx.String(), "type", rootType.String())
	r.roots[ctx] = rootType
}

// RegisterExternalFunction makes a cty function callable from scripts.
func (r *Registry) RegisterExternalFunction(name string, fn function.Function) {
	for _, ef := range r.externals {
		if ef.Name == name {
			panic(fmt.Sprintf("external function '%s' already registered", name))
		}
	}
	slog.Debug("Registering external function.", "name", name)
	r.externals = append(r.externals, schema.NewExternalFunction(name, fn))
}

// Root returns the top-level receiver type bound to ctx.
func (r *Registry) Root(ctx schema.EvaluationContext) (reflect.Type, bool) {
	t, ok := r.roots[ctx]
	return t, ok
}

// ExternalFunctions returns the registered external functions in
// registration order.
func (r *Registry) ExternalFunctions() []*schema.ExternalFunction {
	return r.externals
}

// Contexts lists the contexts that have a root, in tag order.
func (r *Registry) Contexts() []schema.EvaluationContext {
	var out []schema.EvaluationContext
	for _, c := range []schema.EvaluationContext{schema.SettingsScript, schema.PluginsBlock} {
		if _, ok := r.roots[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
