package settings

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/schemabuilder"
)

// Settings is the target of a settings script.
type Settings struct {
	RootProject      *ProjectDescriptor `dsl:"rootProject" yaml:"rootProject"`
	RootDir          string             `dsl:"rootDir,readonly" yaml:"rootDir"`
	PluginManagement *PluginManagement  `dsl:"pluginManagement" yaml:"pluginManagement,omitempty"`

	Includes        []string `yaml:"includes,omitempty"`
	FeaturePreviews []string `yaml:"featurePreviews,omitempty"`
}

// ProjectDescriptor describes one project of the build.
type ProjectDescriptor struct {
	Name string `dsl:"name" yaml:"name"`
	Path string `dsl:"path,readonly" yaml:"path"`
}

// KnownFeaturePreviews are the names enableFeaturePreview accepts.
var KnownFeaturePreviews = []string{
	"TYPESAFE_PROJECT_ACCESSORS",
	"STABLE_CONFIGURATION_CACHE",
}

// New returns settings for a build rooted at rootDir. The root project is
// named after the directory until a script says otherwise.
func New(rootDir string) *Settings {
	return &Settings{
		RootDir: rootDir,
		RootProject: &ProjectDescriptor{
			Name: filepath.Base(rootDir),
			Path: ":",
		},
	}
}

// EvaluationContext reports that settings accept settings scripts.
func (s *Settings) EvaluationContext() schema.EvaluationContext {
	return schema.SettingsScript
}

func (s *Settings) DeclareFunctions() []schemabuilder.FunctionDecl {
	return []schemabuilder.FunctionDecl{
		{
			Name:      "include",
			Method:    "Include",
			Params:    []string{"projectPaths"},
			Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockNotAllowed},
		},
		{
			Name:      "enableFeaturePreview",
			Method:    "EnableFeaturePreview",
			Params:    []string{"name"},
			Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockNotAllowed},
		},
		{
			Name:      "file",
			Method:    "File",
			Params:    []string{"path"},
			Semantics: schema.Pure{},
		},
	}
}

// Include adds projects by path. A leading colon is optional.
func (s *Settings) Include(projectPaths ...string) {
	for _, p := range projectPaths {
		if !strings.HasPrefix(p, ":") {
			p = ":" + p
		}
		if !slices.Contains(s.Includes, p) {
			s.Includes = append(s.Includes, p)
		}
	}
}

// EnableFeaturePreview turns on an incubating feature.
func (s *Settings) EnableFeaturePreview(name string) error {
	if !slices.Contains(KnownFeaturePreviews, name) {
		return fmt.Errorf("unknown feature preview %q", name)
	}
	if !slices.Contains(s.FeaturePreviews, name) {
		s.FeaturePreviews = append(s.FeaturePreviews, name)
	}
	return nil
}

// File resolves path against the root directory.
func (s *Settings) File(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.RootDir, path)
}
