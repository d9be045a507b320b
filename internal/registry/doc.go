// Package registry is the glue between host Go types and the evaluator.
//
// Modules register which Go type is the top-level receiver for each
// evaluation context, plus the external functions every schema carries. The
// Provider turns those registrations into schemas on demand and caches them;
// ValidateRegistry builds every registered schema up front so a mismatch
// between host code and its declarations is caught at startup instead of at
// the first script.
package registry
