package schema

// EvaluationContext selects which schema variant applies to a target.
type EvaluationContext int

const (
	UnknownScript EvaluationContext = iota
	SettingsScript
	PluginsBlock
)

func (c EvaluationContext) String() string {
	switch c {
	case SettingsScript:
		return "settings"
	case PluginsBlock:
		return "plugins"
	default:
		return "unknown"
	}
}

// ParseEvaluationContext is the inverse of String.
func ParseEvaluationContext(s string) (EvaluationContext, bool) {
	switch s {
	case "settings":
		return SettingsScript, true
	case "plugins":
		return PluginsBlock, true
	case "unknown":
		return UnknownScript, true
	default:
		return UnknownScript, false
	}
}

// ContextReporter is the capability a target exposes to say which kind of
// script it accepts.
type ContextReporter interface {
	EvaluationContext() EvaluationContext
}

// ContextFor asks the target for its evaluation context. Targets without
// the capability are UnknownScript.
func ContextFor(target any) EvaluationContext {
	if r, ok := target.(ContextReporter); ok {
		return r.EvaluationContext()
	}
	return UnknownScript
}
