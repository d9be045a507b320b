package settings

import (
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/schemabuilder"
)

// PluginManagement configures where plugins come from.
type PluginManagement struct {
	Repositories *RepositoryHandler  `dsl:"repositories" yaml:"repositories,omitempty"`
	Plugins      *PluginDependencies `dsl:"plugins" yaml:"plugins,omitempty"`

	IncludedBuilds []string `yaml:"includedBuilds,omitempty"`
}

func (m *PluginManagement) DeclareFunctions() []schemabuilder.FunctionDecl {
	return []schemabuilder.FunctionDecl{{
		Name:      "includeBuild",
		Method:    "IncludeBuild",
		Params:    []string{"rootProject"},
		Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockNotAllowed},
	}}
}

// IncludeBuild adds a build that contributes plugins.
func (m *PluginManagement) IncludeBuild(rootProject string) {
	m.IncludedBuilds = append(m.IncludedBuilds, rootProject)
}

// RepositoryHandler collects artifact repositories in declaration order.
type RepositoryHandler struct {
	Repositories []*MavenRepository `yaml:"repositories,omitempty"`
}

// MavenRepository is one artifact repository.
type MavenRepository struct {
	Name string `dsl:"name" yaml:"name"`
	URL  string `dsl:"url" yaml:"url"`
}

const (
	GoogleURL       = "https://dl.google.com/dl/android/maven2/"
	MavenCentralURL = "https://repo.maven.apache.org/maven2/"
)

func (h *RepositoryHandler) DeclareFunctions() []schemabuilder.FunctionDecl {
	block := schema.AddAndConfigure{ConfigureBlock: schema.BlockOptional}
	return []schemabuilder.FunctionDecl{
		{Name: "google", Method: "Google", Semantics: block},
		{Name: "mavenCentral", Method: "MavenCentral", Semantics: block},
		{Name: "maven", Method: "Maven", Semantics: block},
	}
}

func (h *RepositoryHandler) Google() *MavenRepository {
	return h.add(&MavenRepository{Name: "Google", URL: GoogleURL})
}

func (h *RepositoryHandler) MavenCentral() *MavenRepository {
	return h.add(&MavenRepository{Name: "MavenRepo", URL: MavenCentralURL})
}

// Maven adds a repository the script names and locates.
func (h *RepositoryHandler) Maven() *MavenRepository {
	return h.add(&MavenRepository{Name: "maven"})
}

func (h *RepositoryHandler) add(r *MavenRepository) *MavenRepository {
	h.Repositories = append(h.Repositories, r)
	return r
}

// PluginDependencies collects plugin requests.
type PluginDependencies struct {
	Requests []*PluginDependency `yaml:"requests,omitempty"`
}

// PluginDependency requests one plugin.
type PluginDependency struct {
	ID      string `dsl:"id,readonly" yaml:"id"`
	Version string `dsl:"version" yaml:"version,omitempty"`
	Apply   bool   `dsl:"apply" yaml:"apply"`
}

func (p *PluginDependencies) DeclareFunctions() []schemabuilder.FunctionDecl {
	return []schemabuilder.FunctionDecl{{
		Name:      "id",
		Method:    "ID",
		Params:    []string{"id"},
		Semantics: schema.AddAndConfigure{ConfigureBlock: schema.BlockOptional},
	}}
}

// ID requests a plugin. It is applied unless the script says otherwise.
func (p *PluginDependencies) ID(id string) *PluginDependency {
	d := &PluginDependency{ID: id, Apply: true}
	p.Requests = append(p.Requests, d)
	return d
}

// PluginsReceiver is the target of a standalone plugins block.
type PluginsReceiver struct {
	Plugins *PluginDependencies `dsl:"plugins" yaml:"plugins"`
}

// NewPluginsReceiver returns an empty plugins block target.
func NewPluginsReceiver() *PluginsReceiver {
	return &PluginsReceiver{Plugins: &PluginDependencies{}}
}

// EvaluationContext reports that the receiver accepts plugins blocks.
func (p *PluginsReceiver) EvaluationContext() schema.EvaluationContext {
	return schema.PluginsBlock
}
