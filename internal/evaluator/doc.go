// Package evaluator runs one script against one target.
//
// The pipeline is a fixed sequence of stages:
//
//	Start -> SchemaResolved -> Parsed -> TreeBuilt -> Resolved -> Traced -> Materialized
//
// A missing schema or a script the parser rejects outright ends the run at
// once. Every later stage only adds its failures to a shared list and the
// run continues through tracing, so one evaluation reports as many problems
// as it can find. The target is touched only when that list is empty.
package evaluator
