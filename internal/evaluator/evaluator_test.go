package evaluator

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Uchennaokeke444/Gradle/internal/materialize"
	"github.com/Uchennaokeke444/Gradle/internal/registry"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// named is the smallest possible target: one string property.
type named struct {
	Name string `dsl:"name"`
	A    string `dsl:"a"`
	B    string `dsl:"b"`
}

func (*named) EvaluationContext() schema.EvaluationContext { return schema.SettingsScript }

type namedModule struct{}

func (namedModule) Register(r *registry.Registry) {
	r.RegisterRoot(schema.SettingsScript, reflect.TypeOf(&named{}))
}

// unregistered reports a context but no root is bound to it.
type unregistered struct{}

func (*unregistered) EvaluationContext() schema.EvaluationContext { return schema.PluginsBlock }

// impostor claims the settings context without being the registered type.
type impostor struct{ Name string }

func (*impostor) EvaluationContext() schema.EvaluationContext { return schema.SettingsScript }

// sized has integer fields narrower than a script number.
type sized struct {
	Count int   `dsl:"count"`
	Port  uint8 `dsl:"port"`
}

func (*sized) EvaluationContext() schema.EvaluationContext { return schema.PluginsBlock }

type sizedModule struct{}

func (sizedModule) Register(r *registry.Registry) {
	r.RegisterRoot(schema.PluginsBlock, reflect.TypeOf(&sized{}))
}

func newEvaluator() *Evaluator {
	return New(registry.NewProvider(registry.New(namedModule{})))
}

func evaluate(t *testing.T, target any, text string) Result {
	t.Helper()
	res, err := newEvaluator().Evaluate(context.Background(), target, Source{FileName: "test.hcl", Text: text})
	require.NoError(t, err)
	return res
}

func failureTypes(t *testing.T, res Result) []string {
	t.Helper()
	ne, ok := res.(NotEvaluated)
	require.True(t, ok, "expected NotEvaluated, got %T", res)
	var out []string
	for _, f := range ne.StageFailures {
		out = append(out, reflect.TypeOf(f).Name())
	}
	return out
}

func TestEvaluate_HappyPath(t *testing.T) {
	target := &named{}
	res := evaluate(t, target, `name = "x"`)

	assert.Equal(t, Evaluated{}, res)
	assert.Equal(t, "x", target.Name)
}

func TestEvaluate_NoSchemaStopsImmediately(t *testing.T) {
	testCases := []struct {
		name   string
		target any
	}{
		{"no context capability", &struct{ Name string }{}},
		{"context without root", &unregistered{}},
		{"wrong type for context", &impostor{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// The script is broken on purpose; parsing must not run.
			res := evaluate(t, tc.target, "name = = {")
			assert.Equal(t, []string{"NoSchemaAvailable"}, failureTypes(t, res))

			f := res.(NotEvaluated).StageFailures[0].(NoSchemaAvailable)
			assert.Same(t, tc.target, f.Target)
			assert.NotEmpty(t, f.Reason)
		})
	}
}

func TestEvaluate_UnparseableStopsImmediately(t *testing.T) {
	target := &named{}
	res := evaluate(t, target, "name = \"x\"\nrootProject {\n")

	assert.Equal(t, []string{"NoParseResult"}, failureTypes(t, res))
	f := res.(NotEvaluated).StageFailures[0].(NoParseResult)
	assert.True(t, f.Diagnostics.HasErrors())
	assert.Empty(t, target.Name)
}

func TestEvaluate_CollectsFailuresOfAllStages(t *testing.T) {
	target := &named{}
	res := evaluate(t, target, `
name = 1 + 2
nam = "x"
a = b
`)
	assert.Equal(t,
		[]string{"FailuresInLanguageTree", "FailuresInResolution", "UnassignedValuesUsed"},
		failureTypes(t, res))
	assert.Equal(t, &named{}, target, "target must not be touched")

	failures := res.(NotEvaluated).StageFailures
	resolutionErrs := failures[1].(FailuresInResolution).Errors
	require.Len(t, resolutionErrs, 1)
	assert.Equal(t, resolution.UnresolvedAssignmentLhs, resolutionErrs[0].Kind)
	assert.Contains(t, resolutionErrs[0].Suggestions, "name")
}

func TestEvaluate_ReadBeforeAssignment(t *testing.T) {
	target := &named{}
	res := evaluate(t, target, "a = b\nb = \"1\"\n")

	require.Equal(t, []string{"UnassignedValuesUsed"}, failureTypes(t, res))
	usages := res.(NotEvaluated).StageFailures[0].(UnassignedValuesUsed).Usages
	require.Len(t, usages, 1)
	assert.Equal(t, "b", usages[0].Access.Property.Name)
	assert.Empty(t, target.A)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	src := "name = 1 + 2\nnam = \"x\"\na = b\nb = a\n"
	first := evaluate(t, &named{}, src)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, evaluate(t, &named{}, src))
	}
}

func TestEvaluate_SettingsScript(t *testing.T) {
	e := New(registry.NewProvider(registry.New(settings.Module{})))
	target := settings.New("/work/demo")

	res, err := e.Evaluate(context.Background(), target, Source{FileName: "settings.hcl", Text: `
rootProject {
  name = upper("demo-app")
}
include ":app" ":lib" {
}
pluginManagement {
  repositories {
    google {
    }
    maven {
      name = "internal"
      url  = format("https://%s/maven", "repo.example.com")
    }
  }
  plugins {
    id "com.android.application" {
      version = "8.5.0"
      apply   = false
    }
  }
}
`})
	require.NoError(t, err)
	require.Equal(t, Evaluated{}, res)

	assert.Equal(t, "DEMO-APP", target.RootProject.Name)
	assert.Equal(t, []string{":app", ":lib"}, target.Includes)
	repos := target.PluginManagement.Repositories.Repositories
	require.Len(t, repos, 2)
	assert.Equal(t, settings.GoogleURL, repos[0].URL)
	assert.Equal(t, "https://repo.example.com/maven", repos[1].URL)
	requests := target.PluginManagement.Plugins.Requests
	require.Len(t, requests, 1)
	assert.Equal(t, settings.PluginDependency{ID: "com.android.application", Version: "8.5.0", Apply: false}, *requests[0])
}

func TestEvaluate_HostErrorIsReturned(t *testing.T) {
	e := New(registry.NewProvider(registry.New(settings.Module{})))
	res, err := e.Evaluate(context.Background(), settings.New("/work"), Source{
		FileName: "settings.hcl",
		Text:     "enableFeaturePreview \"NOT_A_FEATURE\" {\n}\n",
	})

	assert.Nil(t, res)
	var callErr *materialize.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "enableFeaturePreview", callErr.Function)
}

func TestSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`name = "x"`), 0o644))

	src, err := SourceFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Source{FileName: path, Text: `name = "x"`}, src)

	_, err = SourceFromFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "failed to read script")
}

type recordingVisitor struct{ seen []string }

func (v *recordingVisitor) NoSchemaAvailable(NoSchemaAvailable) { v.seen = append(v.seen, "schema") }
func (v *recordingVisitor) NoParseResult(NoParseResult)         { v.seen = append(v.seen, "parse") }
func (v *recordingVisitor) FailuresInLanguageTree(FailuresInLanguageTree) {
	v.seen = append(v.seen, "tree")
}
func (v *recordingVisitor) FailuresInResolution(FailuresInResolution) {
	v.seen = append(v.seen, "resolution")
}
func (v *recordingVisitor) UnassignedValuesUsed(UnassignedValuesUsed) {
	v.seen = append(v.seen, "unassigned")
}

func TestVisit(t *testing.T) {
	v := &recordingVisitor{}
	for _, f := range []StageFailure{
		NoSchemaAvailable{}, NoParseResult{}, FailuresInLanguageTree{},
		FailuresInResolution{}, UnassignedValuesUsed{},
	} {
		Visit(f, v)
	}
	assert.Equal(t, []string{"schema", "parse", "tree", "resolution", "unassigned"}, v.seen)
}

func TestEvaluate_NumbersOutsideHostRange(t *testing.T) {
	e := New(registry.NewProvider(registry.New(sizedModule{})))

	t.Run("in range", func(t *testing.T) {
		target := &sized{}
		res, err := e.Evaluate(context.Background(), target, Source{FileName: "test.hcl", Text: "count = 3\nport = 255\n"})
		require.NoError(t, err)
		assert.Equal(t, Evaluated{}, res)
		assert.Equal(t, sized{Count: 3, Port: 255}, *target)
	})

	testCases := []struct {
		name string
		src  string
	}{
		{"fraction into int", "count = 1.5\n"},
		{"too large for uint8", "port = 300\n"},
		{"negative into uint8", "port = -1\n"},
		{"valid assignment before the bad one", "count = 3\nport = 300\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := &sized{}
			res, err := e.Evaluate(context.Background(), target, Source{FileName: "test.hcl", Text: tc.src})
			require.NoError(t, err, "a script error must not surface as an internal failure")
			assert.Equal(t, []string{"FailuresInResolution"}, failureTypes(t, res))

			errs := res.(NotEvaluated).StageFailures[0].(FailuresInResolution).Errors
			require.Len(t, errs, 1)
			assert.Equal(t, resolution.AssignmentTypeMismatch, errs[0].Kind)
			assert.Equal(t, sized{}, *target, "target must stay untouched")
		})
	}
}
