// Package settings is the host model scripts configure: a settings script
// declaring the project structure and plugin management, and a plugins
// block.
//
// Fields tagged `dsl` are visible to scripts. Methods listed by
// DeclareFunctions become script functions. See package schemabuilder for
// how both are read.
package settings
