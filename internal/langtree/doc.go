// Package langtree converts an HCL native-syntax body into the normalized
// language tree of the restricted configuration language.
//
// The restricted language has assignments (`name = value`), configuring
// blocks (`fn "arg" { ... }`), calls in value position (`fn(x)`), property
// reads (`a.b`), and literals. Anything else HCL can express is reported as
// an UnsupportedConstruct for that fragment only; the rest of the tree is
// still built so later stages can report their own problems in the same
// pass.
package langtree
