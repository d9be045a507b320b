package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/schemabuilder"
)

// Provider builds schemas for registered roots. It is safe for concurrent
// use; built schemas are cached per (root type, context).
type Provider struct {
	registry *Registry
	builder  *schemabuilder.Builder

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

type cacheKey struct {
	root reflect.Type
	ctx  schema.EvaluationContext
}

type cacheEntry struct {
	schema *schema.AnalysisSchema
	err    error
}

// NewProvider creates a provider backed by the registry.
func NewProvider(r *Registry) *Provider {
	return &Provider{
		registry: r,
		builder:  schemabuilder.New(r.ExternalFunctions()...),
		cache:    make(map[cacheKey]cacheEntry),
	}
}

// GetSchema returns the schema for target in the given context, or NotBuilt
// when the target is not something this registry knows how to configure.
func (p *Provider) GetSchema(ctx context.Context, target any, ec schema.EvaluationContext) schema.Result {
	logger := ctxlog.FromContext(ctx).With("context", ec.String())

	if ec == schema.UnknownScript {
		logger.Debug("No schema for unknown script context.")
		return schema.NotBuilt{Reason: "target does not report a known evaluation context"}
	}
	root, ok := p.registry.Root(ec)
	if !ok {
		logger.Debug("No top-level receiver registered.")
		return schema.NotBuilt{Reason: fmt.Sprintf("no top-level receiver registered for %s scripts", ec)}
	}
	if got := reflect.TypeOf(target); got != root {
		logger.Debug("Target type does not match registered receiver.", "target_type", fmt.Sprintf("%T", target), "root_type", root.String())
		return schema.NotBuilt{Reason: fmt.Sprintf("target of type %T is not a %s", target, root)}
	}

	s, err := p.build(root, ec)
	if err != nil {
		logger.Warn("Schema could not be built.", "root_type", root.String(), "error", err)
		return schema.NotBuilt{Reason: err.Error()}
	}
	return schema.Available{Schema: s}
}

func (p *Provider) build(root reflect.Type, ec schema.EvaluationContext) (*schema.AnalysisSchema, error) {
	key := cacheKey{root: root, ctx: ec}

	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.cache[key]; ok {
		return e.schema, e.err
	}
	s, err := p.builder.Build(root)
	p.cache[key] = cacheEntry{schema: s, err: err}
	return s, err
}
