package registry

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/schemabuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

type settingsRoot struct {
	Name string `dsl:"name"`
}

type pluginsRoot struct{}

type brokenRoot struct{}

func (*brokenRoot) DeclareFunctions() []schemabuilder.FunctionDecl {
	return []schemabuilder.FunctionDecl{{Name: "x", Method: "Missing", Semantics: schema.Pure{}}}
}

type testModule struct {
	settings reflect.Type
}

func (m testModule) Register(r *Registry) {
	r.RegisterRoot(schema.SettingsScript, m.settings)
	r.RegisterExternalFunction("upper", stdlib.UpperFunc)
}

type pluginsModule struct{}

func (pluginsModule) Register(r *Registry) {
	r.RegisterRoot(schema.PluginsBlock, reflect.TypeOf(&pluginsRoot{}))
}

func TestRegistry(t *testing.T) {
	r := New(pluginsModule{}, testModule{settings: reflect.TypeOf(&settingsRoot{})})

	assert.Equal(t, []schema.EvaluationContext{schema.SettingsScript, schema.PluginsBlock}, r.Contexts())
	root, ok := r.Root(schema.SettingsScript)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(&settingsRoot{}), root)
	require.Len(t, r.ExternalFunctions(), 1)
	assert.Equal(t, "upper", r.ExternalFunctions()[0].Name)

	t.Run("duplicate root panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "context 'plugins' already bound to *registry.pluginsRoot", func() {
			r.RegisterRoot(schema.PluginsBlock, reflect.TypeOf(&pluginsRoot{}))
		})
	})
	t.Run("unknown context panics", func(t *testing.T) {
		assert.Panics(t, func() { r.RegisterRoot(schema.UnknownScript, reflect.TypeOf(&pluginsRoot{})) })
	})
	t.Run("duplicate external panics", func(t *testing.T) {
		assert.Panics(t, func() { r.RegisterExternalFunction("upper", stdlib.LowerFunc) })
	})
}

func TestProvider_GetSchema(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(New(testModule{settings: reflect.TypeOf(&settingsRoot{})}))

	t.Run("available", func(t *testing.T) {
		res := p.GetSchema(ctx, &settingsRoot{}, schema.SettingsScript)
		available, ok := res.(schema.Available)
		require.True(t, ok, "got %#v", res)
		_, hasName := available.Schema.TopLevelReceiverType.Property("name")
		assert.True(t, hasName)
		assert.Len(t, available.Schema.ExternalFunctionsNamed("upper"), 1)

		again := p.GetSchema(ctx, &settingsRoot{}, schema.SettingsScript).(schema.Available)
		assert.Same(t, available.Schema, again.Schema)
	})

	testCases := []struct {
		name   string
		target any
		ec     schema.EvaluationContext
		want   string
	}{
		{"unknown context", &settingsRoot{}, schema.UnknownScript, "does not report a known evaluation context"},
		{"unregistered context", &pluginsRoot{}, schema.PluginsBlock, "no top-level receiver registered for plugins scripts"},
		{"wrong target type", settingsRoot{}, schema.SettingsScript, "target of type registry.settingsRoot is not a *registry.settingsRoot"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := p.GetSchema(ctx, tc.target, tc.ec)
			notBuilt, ok := res.(schema.NotBuilt)
			require.True(t, ok, "got %#v", res)
			assert.Contains(t, notBuilt.Reason, tc.want)
		})
	}

	t.Run("build failure", func(t *testing.T) {
		p := NewProvider(New(testModule{settings: reflect.TypeOf(&brokenRoot{})}))
		res := p.GetSchema(ctx, &brokenRoot{}, schema.SettingsScript)
		notBuilt, ok := res.(schema.NotBuilt)
		require.True(t, ok)
		assert.Contains(t, notBuilt.Reason, "method Missing not found")
	})
}

func TestProvider_ConcurrentUse(t *testing.T) {
	p := NewProvider(New(testModule{settings: reflect.TypeOf(&settingsRoot{})}))

	const n = 16
	schemas := make([]*schema.AnalysisSchema, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := p.GetSchema(context.Background(), &settingsRoot{}, schema.SettingsScript)
			if a, ok := res.(schema.Available); ok {
				schemas[i] = a.Schema
			}
		}()
	}
	wg.Wait()

	for _, s := range schemas {
		require.NotNil(t, s)
		assert.Same(t, schemas[0], s)
	}
}

func TestValidateRegistry(t *testing.T) {
	ctx := context.Background()

	ok := NewProvider(New(pluginsModule{}, testModule{settings: reflect.TypeOf(&settingsRoot{})}))
	require.NoError(t, ok.ValidateRegistry(ctx))

	broken := NewProvider(New(testModule{settings: reflect.TypeOf(&brokenRoot{})}))
	err := broken.ValidateRegistry(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
	assert.Contains(t, err.Error(), "context 'settings'")
}
