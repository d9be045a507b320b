package evaluator

import (
	"fmt"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
	"github.com/Uchennaokeke444/Gradle/internal/tracer"
	"github.com/hashicorp/hcl/v2"
)

// Result is Evaluated or NotEvaluated.
type Result interface {
	evaluationResult()
}

// Evaluated means the script was valid and the target has been configured.
type Evaluated struct{}

// NotEvaluated lists why the script was rejected, in stage order. The
// target was not modified.
type NotEvaluated struct {
	StageFailures []StageFailure
}

func (Evaluated) evaluationResult()    {}
func (NotEvaluated) evaluationResult() {}

// StageFailure is a problem reported by one stage. The set of
// implementations is closed; use Visit to handle all of them.
type StageFailure interface {
	fmt.Stringer
	stageFailure()
}

// NoSchemaAvailable means the target is not something scripts can
// configure.
type NoSchemaAvailable struct {
	Target any
	Reason string
}

// NoParseResult means the parser produced no tree.
type NoParseResult struct {
	Diagnostics hcl.Diagnostics
}

// FailuresInLanguageTree lists constructs outside the language.
type FailuresInLanguageTree struct {
	Failures []*langtree.UnsupportedConstruct
}

// FailuresInResolution lists names and calls that could not be bound.
type FailuresInResolution struct {
	Errors []*resolution.Error
}

// UnassignedValuesUsed lists reads of properties that had no value yet.
type UnassignedValuesUsed struct {
	Usages []*tracer.UnassignedValueUsed
}

func (NoSchemaAvailable) stageFailure()      {}
func (NoParseResult) stageFailure()          {}
func (FailuresInLanguageTree) stageFailure() {}
func (FailuresInResolution) stageFailure()   {}
func (UnassignedValuesUsed) stageFailure()   {}

func (f NoSchemaAvailable) String() string {
	return fmt.Sprintf("no schema available for %T: %s", f.Target, f.Reason)
}

func (f NoParseResult) String() string {
	return fmt.Sprintf("script could not be parsed (%d diagnostics)", len(f.Diagnostics.Errs()))
}

func (f FailuresInLanguageTree) String() string {
	return fmt.Sprintf("%d unsupported language constructs", len(f.Failures))
}

func (f FailuresInResolution) String() string {
	return fmt.Sprintf("%d resolution errors", len(f.Errors))
}

func (f UnassignedValuesUsed) String() string {
	return fmt.Sprintf("%d unassigned values used", len(f.Usages))
}

// Visitor handles every kind of stage failure.
type Visitor interface {
	NoSchemaAvailable(NoSchemaAvailable)
	NoParseResult(NoParseResult)
	FailuresInLanguageTree(FailuresInLanguageTree)
	FailuresInResolution(FailuresInResolution)
	UnassignedValuesUsed(UnassignedValuesUsed)
}

// Visit dispatches f to the matching method of v.
func Visit(f StageFailure, v Visitor) {
	switch f := f.(type) {
	case NoSchemaAvailable:
		v.NoSchemaAvailable(f)
	case NoParseResult:
		v.NoParseResult(f)
	case FailuresInLanguageTree:
		v.FailuresInLanguageTree(f)
	case FailuresInResolution:
		v.FailuresInResolution(f)
	case UnassignedValuesUsed:
		v.UnassignedValuesUsed(f)
	default:
		panic(fmt.Sprintf("unknown stage failure %T", f))
	}
}
