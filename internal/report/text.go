package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/evaluator"
	"github.com/fatih/color"
)

var (
	okColor       = color.New(color.FgGreen, color.Bold)
	failColor     = color.New(color.FgRed, color.Bold)
	stageColor    = color.New(color.FgYellow)
	locationColor = color.New(color.Faint)
	hintColor     = color.New(color.FgCyan)
)

func writeText(w io.Writer, r Report) error {
	if _, ok := r.Result.(evaluator.Evaluated); ok {
		_, err := okColor.Fprintf(w, "✔ %s evaluated\n", r.Script)
		return err
	}

	stages := Stages(r.Result)
	var sb strings.Builder
	failColor.Fprintf(&sb, "✘ %s not evaluated (%d stage failures)\n", r.Script, len(stages))
	for _, st := range stages {
		stageColor.Fprintf(&sb, "  %s: %s\n", st.Name, st.Summary)
		for _, p := range st.Problems {
			sb.WriteString("    ")
			if p.Location != "" {
				locationColor.Fprintf(&sb, "%s ", p.Location)
			}
			sb.WriteString(p.Message)
			if len(p.Suggestions) > 0 {
				hintColor.Fprintf(&sb, " (did you mean %s?)", strings.Join(p.Suggestions, ", "))
			}
			sb.WriteString("\n")
		}
	}
	_, err := fmt.Fprint(w, sb.String())
	return err
}
