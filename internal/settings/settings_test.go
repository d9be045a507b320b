package settings_test

import (
	"context"
	"testing"

	"github.com/Uchennaokeke444/Gradle/internal/evaluator"
	"github.com/Uchennaokeke444/Gradle/internal/registry"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/settings"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := settings.New("/work/demo")
	assert.Equal(t, "demo", s.RootProject.Name)
	assert.Equal(t, ":", s.RootProject.Path)
	assert.Equal(t, schema.SettingsScript, schema.ContextFor(s))
	assert.Equal(t, schema.PluginsBlock, schema.ContextFor(settings.NewPluginsReceiver()))
}

func TestSettings_Include(t *testing.T) {
	s := settings.New("/work")
	s.Include("app", ":lib")
	s.Include(":app")
	assert.Equal(t, []string{":app", ":lib"}, s.Includes)
}

func TestSettings_EnableFeaturePreview(t *testing.T) {
	s := settings.New("/work")
	require.NoError(t, s.EnableFeaturePreview("STABLE_CONFIGURATION_CACHE"))
	require.NoError(t, s.EnableFeaturePreview("STABLE_CONFIGURATION_CACHE"))
	assert.Equal(t, []string{"STABLE_CONFIGURATION_CACHE"}, s.FeaturePreviews)

	err := s.EnableFeaturePreview("GRADLE_METADATA")
	assert.EqualError(t, err, `unknown feature preview "GRADLE_METADATA"`)
}

func TestSettings_File(t *testing.T) {
	s := settings.New("/work")
	assert.Equal(t, "/work/gradle/libs.toml", s.File("gradle/libs.toml"))
	assert.Equal(t, "/etc/x", s.File("/etc/../etc/x"))
}

func TestSettingsScript(t *testing.T) {
	e := evaluator.New(registry.NewProvider(registry.New(settings.Module{})))
	target := settings.New("/work/demo")

	res, err := e.Evaluate(context.Background(), target, evaluator.Source{FileName: "settings.hcl", Text: `
rootProject {
  name = lower("Demo")
}
include "app" ":lib" {
}
include ":app" {
}
enableFeaturePreview "TYPESAFE_PROJECT_ACCESSORS" {
}
pluginManagement {
  includeBuild "build-logic" {
  }
  repositories {
    mavenCentral {
    }
  }
}
`})
	require.NoError(t, err)
	require.Equal(t, evaluator.Evaluated{}, res)

	want := &settings.Settings{
		RootProject: &settings.ProjectDescriptor{Name: "demo", Path: ":"},
		RootDir:     "/work/demo",
		PluginManagement: &settings.PluginManagement{
			Repositories: &settings.RepositoryHandler{
				Repositories: []*settings.MavenRepository{{Name: "MavenRepo", URL: settings.MavenCentralURL}},
			},
			IncludedBuilds: []string{"build-logic"},
		},
		Includes:        []string{":app", ":lib"},
		FeaturePreviews: []string{"TYPESAFE_PROJECT_ACCESSORS"},
	}
	if diff := cmp.Diff(want, target); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginsScript(t *testing.T) {
	e := evaluator.New(registry.NewProvider(registry.New(settings.Module{})))
	target := settings.NewPluginsReceiver()

	res, err := e.Evaluate(context.Background(), target, evaluator.Source{FileName: "plugins.hcl", Text: `
plugins {
  id "java-library" {
  }
  id "org.jetbrains.kotlin.jvm" {
    version = trimspace(" 2.0.0 ")
    apply   = false
  }
}
`})
	require.NoError(t, err)
	require.Equal(t, evaluator.Evaluated{}, res)

	want := []*settings.PluginDependency{
		{ID: "java-library", Apply: true},
		{ID: "org.jetbrains.kotlin.jvm", Version: "2.0.0", Apply: false},
	}
	if diff := cmp.Diff(want, target.Plugins.Requests); diff != "" {
		t.Errorf("plugin requests mismatch (-want +got):\n%s", diff)
	}
}

func TestPluginsScript_ReadOnlyID(t *testing.T) {
	e := evaluator.New(registry.NewProvider(registry.New(settings.Module{})))

	res, err := e.Evaluate(context.Background(), settings.NewPluginsReceiver(), evaluator.Source{FileName: "plugins.hcl", Text: `
plugins {
  id "java" {
    id = "other"
  }
}
`})
	require.NoError(t, err)
	require.IsType(t, evaluator.NotEvaluated{}, res)
}
