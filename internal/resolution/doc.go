// Package resolution binds a language tree to a schema.
//
// Every statement is resolved against the receivers in scope, innermost
// first: property names to schema properties, calls to member or external
// functions. The output is a tree of operations in source order, where each
// value is an ObjectOrigin describing statically where it comes from.
// Problems are collected as Errors; resolution always visits every
// statement so one pass reports everything.
//
// Resolution never looks at live values, only at declared types.
package resolution
