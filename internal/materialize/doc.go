// Package materialize replays an object graph on a live host object.
//
// Members are bound through a dispatch table built once per Go type from
// reflection and cached for the life of the Materializer. A member the
// graph names but the table lacks is an InvariantViolation: it means the
// schema and the host type disagree, which no script can cause.
package materialize
