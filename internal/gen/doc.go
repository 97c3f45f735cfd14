// Package gen implements the atomgen derivation pipeline: parse a Go
// package, resolve the types marked for derivation, validate their shapes
// closed-world, and emit atomkit Pack/Unpack implementations.
//
// Derivation is requested with a directive comment on a type declaration:
//
//	//atomkit:atom
//	type Port uint16
//
//	//atomkit:atom logic
//	type Bitmask uint64
//
// or with a YAML manifest naming the types. Three shapes are eligible:
//
//   - newtype: a defined type over a fixed-width builtin
//   - struct: a struct with exactly one field whose type bottoms out at a
//     primitive kind
//   - enum: a defined fixed-width integer type with declared constants;
//     the underlying type is the explicit width declaration, Pack is the
//     integer conversion, and Unpack is a first-match linear scan over the
//     constants that faults on anything else
//
// Everything else is rejected with a coded diagnostic (see validate.go).
// Validation fails closed: any diagnostic means no output file is written.
// A type cannot reach an Atomic container with an invalid shape, because
// the shape is rejected before its Atom implementation exists.
//
// A defined integer type is classified as an enum whenever the package
// declares constants of that type. Counter-style newtypes should keep
// sentinel constants untyped, or force the classification with the
// `newtype` directive argument.
package gen
