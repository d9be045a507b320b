// Package objectgraph turns a traced resolution result into the operations
// the materializer replays on a host object.
//
// Every operation names its receiver explicitly as a Value, so an
// assignment inside a nested block can still target an outer object. Values
// never contain writable property reads; those were replaced by the tracer
// with what was assigned at the point of the read.
package objectgraph
