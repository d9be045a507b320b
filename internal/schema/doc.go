// Package schema describes the surface a restricted configuration script may
// touch: the data classes reachable from a top-level receiver, their
// properties, their configuring functions, and the external pure functions
// callable from any scope.
//
// An AnalysisSchema is built once per evaluation context and is read-only
// afterwards. The resolver binds every element of a script to a member of
// the schema; nothing outside the schema can ever be referenced.
package schema
