// Package schemabuilder derives an AnalysisSchema from Go host types.
//
// Properties are exported struct fields carrying a `dsl` tag:
//
//	type Project struct {
//		Name string `dsl:"name"`
//		Path string `dsl:"path,readonly"`
//	}
//
// A field holding a pointer to a struct is a nested object: it is always
// read-only and gets a synthesized access-and-configure function of the same
// name, so `project { ... }` configures it in place.
//
// Functions are opted in by implementing Declarer. Parameter and return
// types are read from the Go method signature.
package schemabuilder
