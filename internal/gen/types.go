package gen

import "go/token"

// Shape classifies an eligible type declaration.
type Shape int

const (
	// ShapeNewtype is a defined type over a fixed-width builtin.
	ShapeNewtype Shape = iota

	// ShapeStruct is a struct with exactly one field.
	ShapeStruct

	// ShapeEnum is a defined fixed-width integer type with declared
	// constants.
	ShapeEnum
)

// String returns the shape's name.
func (s Shape) String() string {
	switch s {
	case ShapeNewtype:
		return "newtype"
	case ShapeStruct:
		return "struct"
	case ShapeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Capability names a derived marker method.
type Capability string

const (
	// CapLogic derives the AtomLogic marker (bitwise fetch ops).
	CapLogic Capability = "logic"

	// CapInteger derives the AtomInteger marker (integer fetch ops).
	CapInteger Capability = "integer"
)

// Request is one type selected for derivation, before validation.
type Request struct {
	// TypeName is the declared type's name.
	TypeName string

	// Caps are the requested capability derivations.
	Caps []Capability

	// ForceShape overrides enum/newtype classification ("" = automatic).
	ForceShape string

	// Pos is the directive's (or manifest entry's) source position.
	Pos token.Position
}

// Target is a validated derivation target with its emission plan.
type Target struct {
	Name  string
	Shape Shape
	Pos   token.Position

	// Repr is the backing atomkit kind, unqualified (e.g. "Uint16").
	Repr string

	// PackExpr is the Pack method's return expression ("v" is the
	// receiver). Unused for enums.
	PackExpr string

	// UnpackSetup is an optional statement preceding the Unpack return
	// (used when delegating through another atom).
	UnpackSetup string

	// UnpackExpr is the Unpack method's return expression ("src" is the
	// input). Unused for enums.
	UnpackExpr string

	// Variants are the enum constant names in declaration order.
	Variants []string

	// Logic/Integer report which capability markers to emit.
	Logic   bool
	Integer bool

	floatBacked bool
}

// CtorName returns the name of the generated per-type constructor, which
// hides the container's two type parameters.
func (t *Target) CtorName() string {
	name := []rune(t.Name)
	if len(name) > 0 && name[0] >= 'a' && name[0] <= 'z' {
		upper := append([]rune{name[0] - 'a' + 'A'}, name[1:]...)
		return "newAtomic" + string(upper)
	}
	return "NewAtomic" + t.Name
}
