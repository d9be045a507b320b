package evaluator

import (
	"context"
	"fmt"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/materialize"
	"github.com/Uchennaokeke444/Gradle/internal/objectgraph"
	"github.com/Uchennaokeke444/Gradle/internal/parser"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/tracer"
)

// SchemaProvider supplies the schema for a target.
type SchemaProvider interface {
	GetSchema(ctx context.Context, target any, ec schema.EvaluationContext) schema.Result
}

// Evaluator runs scripts against targets. It holds no per-run state and is
// safe for concurrent use.
type Evaluator struct {
	provider     SchemaProvider
	treeBuilder  *langtree.Builder
	resolver     *resolution.Resolver
	tracer       *tracer.Tracer
	materializer *materialize.Materializer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaterializer shares a materializer, and its dispatch tables, between
// evaluators.
func WithMaterializer(m *materialize.Materializer) Option {
	return func(e *Evaluator) {
		e.materializer = m
	}
}

// New creates an evaluator that takes its schemas from provider.
func New(provider SchemaProvider, opts ...Option) *Evaluator {
	e := &Evaluator{
		provider:     provider,
		treeBuilder:  langtree.NewBuilder(),
		resolver:     resolution.New(),
		tracer:       tracer.New(),
		materializer: materialize.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type stage int

const (
	stageStart stage = iota
	stageSchemaResolved
	stageParsed
	stageTreeBuilt
	stageResolved
	stageTraced
	stageMaterialized
	stageFailed
)

var stageNames = [...]string{
	stageStart:          "start",
	stageSchemaResolved: "schema resolved",
	stageParsed:         "parsed",
	stageTreeBuilt:      "tree built",
	stageResolved:       "resolved",
	stageTraced:         "traced",
	stageMaterialized:   "materialized",
	stageFailed:         "failed",
}

func (s stage) String() string { return stageNames[s] }

// Evaluate runs src against target. Expected problems are reported in the
// NotEvaluated result. The error is reserved for materialization failures:
// an InvariantViolation when the graph does not fit the host, or a
// CallError when a host method fails.
func (e *Evaluator) Evaluate(ctx context.Context, target any, src Source) (Result, error) {
	ctx = ctxlog.With(ctx, "script", src.FileName)
	logger := ctxlog.FromContext(ctx)

	state := stageStart
	advance := func(next stage, args ...any) {
		logger.Debug("Evaluation stage complete.", append([]any{"from", state.String(), "to", next.String()}, args...)...)
		state = next
	}

	ec := schema.ContextFor(target)
	var s *schema.AnalysisSchema
	switch res := e.provider.GetSchema(ctx, target, ec).(type) {
	case schema.Available:
		s = res.Schema
	case schema.NotBuilt:
		advance(stageFailed, "reason", res.Reason)
		return NotEvaluated{StageFailures: []StageFailure{NoSchemaAvailable{Target: target, Reason: res.Reason}}}, nil
	default:
		return nil, &materialize.InvariantViolation{Detail: fmt.Sprintf("schema provider returned %T", res)}
	}
	advance(stageSchemaResolved, "context", ec.String())

	tree, diags := parser.Parse(ctx, src.FileName, []byte(src.Text))
	if tree == nil {
		advance(stageFailed, "diagnostics", len(diags))
		return NotEvaluated{StageFailures: []StageFailure{NoParseResult{Diagnostics: diags}}}, nil
	}
	advance(stageParsed)

	var failures []StageFailure

	lt := e.treeBuilder.Build(ctx, tree.Body, langtree.SourceIdentifier{FileName: src.FileName})
	if len(lt.Failures) > 0 {
		failures = append(failures, FailuresInLanguageTree{Failures: lt.Failures})
	}
	advance(stageTreeBuilt, "failures", len(lt.Failures))

	resolved := e.resolver.Resolve(ctx, s, lt.TopLevelBlock)
	if len(resolved.Errors) > 0 {
		failures = append(failures, FailuresInResolution{Errors: resolved.Errors})
	}
	advance(stageResolved, "errors", len(resolved.Errors))

	trace := e.tracer.Trace(ctx, resolved)
	if usages := trace.UnassignedUsages(); len(usages) > 0 {
		failures = append(failures, UnassignedValuesUsed{Usages: usages})
	}
	advance(stageTraced, "unassigned_reads", len(trace.UnassignedUsages()))

	if len(failures) > 0 {
		advance(stageFailed, "stage_failures", len(failures))
		return NotEvaluated{StageFailures: failures}, nil
	}

	root, err := objectgraph.Reflect(resolved, trace, s)
	if err != nil {
		return nil, &materialize.InvariantViolation{Detail: "building object graph", Err: err}
	}
	if err := e.materializer.Apply(ctx, root, target); err != nil {
		return nil, err
	}
	advance(stageMaterialized)
	return Evaluated{}, nil
}
