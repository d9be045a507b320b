package materialize

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/objectgraph"
	"github.com/Uchennaokeke444/Gradle/internal/parser"
	"github.com/Uchennaokeke444/Gradle/internal/resolution"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/schemabuilder"
	"github.com/Uchennaokeke444/Gradle/internal/tracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

type hostRoot struct {
	Name   string      `dsl:"name"`
	Count  int         `dsl:"count"`
	Dir    string      `dsl:"dir,readonly"`
	Nested *hostNested `dsl:"nested"`

	Children []*hostChild
}

type hostNested struct {
	Enabled bool `dsl:"enabled"`
}

type hostChild struct {
	Path    string `dsl:"path"`
	Version string `dsl:"version"`
}

func (r *hostRoot) DeclareFunctions() []schemabuilder.FunctionDecl {
	return []schemabuilder.FunctionDecl{
		{Name: "child", Method: "AddChild", Params: []string{"path"}, Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockOptional}},
		{Name: "greet", Method: "Greet", Params: []string{"who"}, Semantics: schema.Pure{}},
		{Name: "explode", Method: "Explode", Params: []string{"why"}, Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockNotAllowed}},
	}
}

func (r *hostRoot) AddChild(path string) *hostChild {
	c := &hostChild{Path: path}
	r.Children = append(r.Children, c)
	return c
}

func (r *hostRoot) Greet(who string) string {
	return "hello " + who
}

func (r *hostRoot) Explode(why string) error {
	return errors.New(why)
}

func graph(t *testing.T, src string) *objectgraph.ObjectReflection {
	t.Helper()
	ctx := context.Background()

	s, err := schemabuilder.New(schema.NewExternalFunction("upper", stdlib.UpperFunc)).Build(reflect.TypeOf(hostRoot{}))
	require.NoError(t, err)

	tree, diags := parser.Parse(ctx, "test.hcl", []byte(src))
	require.False(t, diags.HasErrors(), diags.Error())
	lt := langtree.NewBuilder().Build(ctx, tree.Body, langtree.SourceIdentifier{FileName: "test.hcl"})
	require.Empty(t, lt.Failures)
	r := resolution.New().Resolve(ctx, s, lt.TopLevelBlock)
	require.Empty(t, r.Errors)
	tr := tracer.New().Trace(ctx, r)
	require.Empty(t, tr.UnassignedUsages())

	root, err := objectgraph.Reflect(r, tr, s)
	require.NoError(t, err)
	return root
}

func TestApply(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		assert func(t *testing.T, got *hostRoot)
	}{
		{
			name: "primitive properties",
			src:  "name = \"demo\"\ncount = 3\n",
			assert: func(t *testing.T, got *hostRoot) {
				assert.Equal(t, "demo", got.Name)
				assert.Equal(t, 3, got.Count)
			},
		},
		{
			name: "number converts to string",
			src:  "name = 42\n",
			assert: func(t *testing.T, got *hostRoot) {
				assert.Equal(t, "42", got.Name)
			},
		},
		{
			name: "added objects are configured in order",
			src: `
child ":app" {
  version = "1"
}
child ":lib" {
}
`,
			assert: func(t *testing.T, got *hostRoot) {
				require.Len(t, got.Children, 2)
				assert.Equal(t, hostChild{Path: ":app", Version: "1"}, *got.Children[0])
				assert.Equal(t, ":lib", got.Children[1].Path)
			},
		},
		{
			name: "nested object is created on access",
			src: `
nested {
  enabled = true
}
`,
			assert: func(t *testing.T, got *hostRoot) {
				require.NotNil(t, got.Nested)
				assert.True(t, got.Nested.Enabled)
			},
		},
		{
			name: "pure and external calls",
			src:  "name = upper(greet(\"you\"))\n",
			assert: func(t *testing.T, got *hostRoot) {
				assert.Equal(t, "HELLO YOU", got.Name)
			},
		},
		{
			name: "host provided property",
			src:  "name = dir\n",
			assert: func(t *testing.T, got *hostRoot) {
				assert.Equal(t, "/work", got.Name)
			},
		},
		{
			name: "value seen at read point",
			src: `
name = "a"
child ":app" {
  version = name
  name = "b"
}
`,
			assert: func(t *testing.T, got *hostRoot) {
				require.Len(t, got.Children, 1)
				assert.Equal(t, "a", got.Children[0].Version)
				assert.Equal(t, "b", got.Name)
			},
		},
		{
			name: "outer receiver from nested block",
			src: `
child ":app" {
  name = "set from child"
}
`,
			assert: func(t *testing.T, got *hostRoot) {
				assert.Equal(t, "set from child", got.Name)
				assert.Empty(t, got.Children[0].Version)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := graph(t, tc.src)
			target := &hostRoot{Dir: "/work"}
			require.NoError(t, New().Apply(context.Background(), root, target))
			tc.assert(t, target)
		})
	}
}

func TestApply_HostErrorIsCallError(t *testing.T) {
	root := graph(t, "explode \"boom\" {\n}\n")
	err := New().Apply(context.Background(), root, &hostRoot{})

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "explode", callErr.Function)
	assert.EqualError(t, callErr.Err, "boom")
}

func TestApply_InvariantViolations(t *testing.T) {
	t.Run("wrong target type", func(t *testing.T) {
		root := graph(t, "name = \"x\"\n")
		err := New().Apply(context.Background(), root, &hostChild{})
		var iv *InvariantViolation
		require.ErrorAs(t, err, &iv)
	})

	t.Run("target is not a pointer", func(t *testing.T) {
		root := graph(t, "name = \"x\"\n")
		err := New().Apply(context.Background(), root, hostRoot{})
		var iv *InvariantViolation
		require.ErrorAs(t, err, &iv)
	})

	t.Run("member missing on host", func(t *testing.T) {
		root := graph(t, "name = \"x\"\n")
		set := root.Operations[0].(*objectgraph.SetProperty)
		broken := *set.Property
		broken.GoField = "Missing"
		set.Property = &broken

		err := New().Apply(context.Background(), root, &hostRoot{})
		var iv *InvariantViolation
		require.ErrorAs(t, err, &iv)
		assert.True(t, strings.Contains(iv.Error(), "Missing"))
	})

	t.Run("object never created", func(t *testing.T) {
		root := &objectgraph.ObjectReflection{
			Receiver: objectgraph.ObjectRef{ID: objectgraph.TopLevelID},
			Operations: []objectgraph.Operation{&objectgraph.SetProperty{
				Receiver: objectgraph.ObjectRef{ID: 7},
				Property: &schema.Property{Name: "path", GoField: "Path"},
				Value:    objectgraph.Null{},
			}},
		}
		err := New().Apply(context.Background(), root, &hostRoot{})
		var iv *InvariantViolation
		require.ErrorAs(t, err, &iv)
	})
}

func TestMaterializer_CachesDispatchTables(t *testing.T) {
	m := New()
	a := m.table(reflect.TypeOf(hostRoot{}))
	b := m.table(reflect.TypeOf(hostRoot{}))
	assert.Same(t, a, b)
	assert.Contains(t, a.methods, "AddChild")
	assert.Contains(t, a.fields, "Name")
}
