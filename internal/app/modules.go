package app

import (
	"github.com/Uchennaokeke444/Gradle/internal/registry"
	"github.com/Uchennaokeke444/Gradle/internal/settings"
)

// coreModules is the definitive list of all modules that are compiled into
// the binary.
var coreModules = []registry.Module{
	settings.Module{},
}
