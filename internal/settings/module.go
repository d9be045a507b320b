package settings

import (
	"reflect"

	"github.com/Uchennaokeke444/Gradle/internal/registry"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Module registers the settings targets and the functions every script can
// call.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterRoot(schema.SettingsScript, reflect.TypeOf(&Settings{}))
	r.RegisterRoot(schema.PluginsBlock, reflect.TypeOf(&PluginsReceiver{}))

	r.RegisterExternalFunction("upper", stdlib.UpperFunc)
	r.RegisterExternalFunction("lower", stdlib.LowerFunc)
	r.RegisterExternalFunction("format", stdlib.FormatFunc)
	r.RegisterExternalFunction("trimspace", stdlib.TrimSpaceFunc)
	r.RegisterExternalFunction("replace", stdlib.ReplaceFunc)
}
