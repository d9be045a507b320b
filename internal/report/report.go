package report

import (
	"context"
	"fmt"
	"io"

	"github.com/Uchennaokeke444/Gradle/internal/evaluator"
	"github.com/goccy/go-yaml"
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatYAML}

// Report is one evaluated script.
type Report struct {
	Script string
	Result evaluator.Result
	// Target is included in YAML output when the script was evaluated.
	Target any
}

// Write renders r in the given format.
func Write(ctx context.Context, w io.Writer, format Format, r Report) error {
	switch format {
	case FormatText:
		return writeText(w, r)
	case FormatYAML:
		return writeYAML(ctx, w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Problem is one line of a stage failure.
type Problem struct {
	Location    string   `yaml:"location,omitempty"`
	Message     string   `yaml:"message"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// Stage groups the problems one stage reported.
type Stage struct {
	Name     string    `yaml:"stage"`
	Summary  string    `yaml:"summary"`
	Problems []Problem `yaml:"problems,omitempty"`
}

// Stages flattens the failures of a result, in stage order. It is empty for
// Evaluated results.
func Stages(res evaluator.Result) []Stage {
	ne, ok := res.(evaluator.NotEvaluated)
	if !ok {
		return nil
	}
	c := &collector{}
	for _, f := range ne.StageFailures {
		evaluator.Visit(f, c)
	}
	return c.stages
}

type collector struct {
	stages []Stage
}

func (c *collector) add(name string, f evaluator.StageFailure, problems []Problem) {
	c.stages = append(c.stages, Stage{Name: name, Summary: f.String(), Problems: problems})
}

func (c *collector) NoSchemaAvailable(f evaluator.NoSchemaAvailable) {
	c.add("schema", f, []Problem{{Message: f.Reason}})
}

func (c *collector) NoParseResult(f evaluator.NoParseResult) {
	problems := make([]Problem, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		p := Problem{Message: d.Summary}
		if d.Detail != "" {
			p.Message += ": " + d.Detail
		}
		if d.Subject != nil {
			p.Location = d.Subject.String()
		}
		problems = append(problems, p)
	}
	c.add("parse", f, problems)
}

func (c *collector) FailuresInLanguageTree(f evaluator.FailuresInLanguageTree) {
	problems := make([]Problem, 0, len(f.Failures))
	for _, u := range f.Failures {
		problems = append(problems, Problem{
			Location: u.SourceData.String(),
			Message:  "unsupported language feature: " + string(u.Feature),
		})
	}
	c.add("language tree", f, problems)
}

func (c *collector) FailuresInResolution(f evaluator.FailuresInResolution) {
	problems := make([]Problem, 0, len(f.Errors))
	for _, e := range f.Errors {
		msg := e.Kind.String()
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		problems = append(problems, Problem{
			Location:    e.Element.Source().String(),
			Message:     msg,
			Suggestions: e.Suggestions,
		})
	}
	c.add("resolution", f, problems)
}

func (c *collector) UnassignedValuesUsed(f evaluator.UnassignedValuesUsed) {
	problems := make([]Problem, 0, len(f.Usages))
	for _, u := range f.Usages {
		problems = append(problems, Problem{
			Location: u.SourceData.String(),
			Message:  fmt.Sprintf("%s read as %s before it was assigned", u.Access, u.Usage),
		})
	}
	c.add("assignment trace", f, problems)
}

type document struct {
	Script    string  `yaml:"script"`
	Evaluated bool    `yaml:"evaluated"`
	Failures  []Stage `yaml:"failures,omitempty"`
	Target    any     `yaml:"target,omitempty"`
}

func writeYAML(ctx context.Context, w io.Writer, r Report) error {
	doc := document{Script: r.Script, Failures: Stages(r.Result)}
	if _, ok := r.Result.(evaluator.Evaluated); ok {
		doc.Evaluated = true
		doc.Target = r.Target
	}
	out, err := yaml.MarshalContext(ctx, doc, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = w.Write(out)
	return err
}
