package resolution

import (
	"fmt"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
)

// ErrorKind classifies resolution problems.
type ErrorKind int

const (
	UnresolvedReference ErrorKind = iota
	NonReadableProperty
	ReadOnlyPropertyAssignment
	UnresolvedAssignmentLhs
	UnresolvedAssignmentRhs
	AssignmentTypeMismatch
	UnitAssignment
	UnresolvedFunctionCallArguments
	UnresolvedFunctionCallSignature
	AmbiguousFunctions
	MissingConfigureLambda
	UnusedConfigureLambda
	DanglingPureExpression
)

var errorKindNames = map[ErrorKind]string{
	UnresolvedReference:             "unresolved reference",
	NonReadableProperty:             "property cannot be read",
	ReadOnlyPropertyAssignment:      "read-only property cannot be assigned",
	UnresolvedAssignmentLhs:         "unresolved assignment target",
	UnresolvedAssignmentRhs:         "unresolved assigned value",
	AssignmentTypeMismatch:          "assignment type mismatch",
	UnitAssignment:                  "assigning a call that returns nothing",
	UnresolvedFunctionCallArguments: "unresolved function call arguments",
	UnresolvedFunctionCallSignature: "no matching function signature",
	AmbiguousFunctions:              "ambiguous function call",
	MissingConfigureLambda:          "configuring block required",
	UnusedConfigureLambda:           "configuring block not accepted",
	DanglingPureExpression:          "result of pure call is unused",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is one resolution problem, attached to the element it concerns.
type Error struct {
	Kind        ErrorKind
	Element     langtree.Element
	Detail      string
	Suggestions []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Element.Source().String())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(e.Suggestions, ", "))
		sb.WriteString("?)")
	}
	return sb.String()
}
