package materialize

import (
	"fmt"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
)

// InvariantViolation reports a graph that cannot be bound to the host.
type InvariantViolation struct {
	Source langtree.SourceData
	Detail string
	Err    error
}

func (e *InvariantViolation) Error() string {
	msg := fmt.Sprintf("internal invariant violated at %s: %s", e.Source, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

// CallError is an error returned by a host method during apply.
type CallError struct {
	Source   langtree.SourceData
	Function string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Source, e.Function, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
