// Package tracer follows property assignments through a resolution result
// in source order.
//
// It answers two questions. Which property reads happen before the property
// was given a value, and what value does each read see. The first becomes
// the UnassignedValuesUsed stage failure; the second feeds the object graph,
// which needs every writable property read replaced by the value assigned
// at that point.
package tracer
