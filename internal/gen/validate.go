package gen

import (
	"fmt"
	"go/ast"
)

// Diagnostic codes (D100-D199). Derivation either fully succeeds or fails
// closed: one diagnostic means no output is written.
const (
	// ErrNotSingleField: struct with zero or more than one field.
	ErrNotSingleField = "D101"

	// ErrUnsupportedShape: a shape with no lossless primitive mapping
	// (maps, slices, pointers, aliases, unresolvable field types, ...).
	ErrUnsupportedShape = "D102"

	// ErrMissingWidth: an integer type of platform-defined width; the
	// representation width must be declared with a fixed-width type.
	ErrMissingWidth = "D103"

	// ErrDataCarryingVariant: an interface sum type; its variants carry
	// data that a primitive representation cannot hold.
	ErrDataCarryingVariant = "D104"

	// ErrCapabilityNotDerivable: a logic/integer capability was requested
	// for a shape whose representation does not meet the capability's
	// precondition.
	ErrCapabilityNotDerivable = "D105"
)

// Diag is one derivation diagnostic, reported at the offending type.
type Diag struct {
	Code    string `json:"code"`
	Type    string `json:"type"`
	Pos     string `json:"pos,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (d Diag) Error() string {
	if d.Pos != "" {
		return fmt.Sprintf("[%s] %s: %s: %s", d.Code, d.Pos, d.Type, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Type, d.Message)
}

type diagFn func(code, format string, args ...any) *Diag

// builtinKinds maps fixed-width builtin types to atomkit kinds.
var builtinKinds = map[string]string{
	"int8":   "Int8",
	"int16":  "Int16",
	"int32":  "Int32",
	"int64":  "Int64",
	"rune":   "Int32",
	"uint8":  "Uint8",
	"byte":   "Uint8",
	"uint16": "Uint16",
	"uint32": "Uint32",
	"uint64": "Uint64",
	"bool":   "Bool",
}

// floatAtoms maps float builtins to the atomkit atom their pack/unpack
// delegates through, and that atom's kind.
var floatAtoms = map[string]struct{ atom, repr string }{
	"float32": {"atomkit.Float32", "Uint32"},
	"float64": {"atomkit.Float64", "Uint64"},
}

// platformWidth lists integer types whose width is not declared in source.
// They are refused so the representation width is always explicit.
var platformWidth = map[string]bool{
	"int":     true,
	"uint":    true,
	"uintptr": true,
}

// kindTypes are the atomkit primitive kind type names the generator maps
// through unchanged. Uintptr and Pointer are excluded: the first has
// platform-defined width and the second needs a hand-written Atom.
var kindTypes = map[string]bool{
	"Int8": true, "Int16": true, "Int32": true, "Int64": true,
	"Uint8": true, "Uint16": true, "Uint32": true, "Uint64": true,
	"Bool": true,
}

// atomkitAtoms maps atomkit's built-in representable types to their kind.
var atomkitAtoms = map[string]struct {
	repr  string
	float bool
}{
	"Float32":       {"Uint32", true},
	"Float64":       {"Uint64", true},
	"Rune":          {"Uint32", false},
	"NonZeroUint32": {"Uint32", false},
	"NonZeroUint64": {"Uint64", false},
	"NonZeroInt32":  {"Int32", false},
	"NonZeroInt64":  {"Int64", false},
}

// chain is the result of following a type expression down to a primitive
// kind. via names the Atom implementation the generated code must route
// through to keep its validation (a directive-carrying type in the same
// package, or an atomkit built-in); an empty via means a plain conversion
// to the kind is lossless and sufficient.
type chain struct {
	repr        string
	via         string
	floatBacked bool
}

type resolver struct {
	pkg      *Package
	memo     map[string]*Target
	visiting map[string]bool

	// requested maps directive/manifest type names to their forced shape,
	// marking the types whose Atom implementation will exist.
	requested map[string]string
}

// Resolve validates every request against the parsed package and returns
// the emission targets. All diagnostics are collected (no fail-fast); a
// non-empty diagnostic list means nothing may be emitted.
func Resolve(pkg *Package, reqs []Request) ([]*Target, []Diag) {
	r := &resolver{
		pkg:       pkg,
		memo:      make(map[string]*Target),
		visiting:  make(map[string]bool),
		requested: make(map[string]string, len(reqs)),
	}
	for _, req := range reqs {
		r.requested[req.TypeName] = req.ForceShape
	}

	var targets []*Target
	var diags []Diag
	seen := make(map[Diag]bool)
	report := func(ds ...Diag) {
		for _, d := range ds {
			// a failing type delegated to by several others reports once
			if !seen[d] {
				seen[d] = true
				diags = append(diags, d)
			}
		}
	}
	for _, req := range reqs {
		t, d := r.resolve(req.TypeName, req.ForceShape)
		if d != nil {
			report(*d)
			continue
		}
		report(r.applyCaps(t, req.Caps)...)
		targets = append(targets, t)
	}
	if len(diags) > 0 {
		return nil, diags
	}
	return targets, nil
}

func (r *resolver) resolve(name, force string) (*Target, *Diag) {
	if t, ok := r.memo[name]; ok {
		return t, nil
	}
	if r.visiting[name] {
		return nil, &Diag{
			Code:    ErrUnsupportedShape,
			Type:    name,
			Message: "recursive representation chain never bottoms out at a primitive kind",
		}
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	td, ok := r.pkg.Type(name)
	if !ok {
		return nil, &Diag{
			Code:    ErrUnsupportedShape,
			Type:    name,
			Message: "type is not declared in the package",
		}
	}
	diag := func(code, format string, args ...any) *Diag {
		return &Diag{Code: code, Type: name, Pos: td.pos.String(), Message: fmt.Sprintf(format, args...)}
	}
	if td.alias {
		return nil, diag(ErrUnsupportedShape, "alias declarations cannot carry a derivation; derive the aliased type instead")
	}

	var t *Target
	var d *Diag
	switch ut := td.spec.Type.(type) {
	case *ast.StructType:
		t, d = r.resolveStruct(name, ut, diag)
	case *ast.InterfaceType:
		d = diag(ErrDataCarryingVariant,
			"interface sum types carry per-variant data that no primitive representation can hold losslessly")
	case *ast.Ident, *ast.SelectorExpr:
		t, d = r.resolveNewtype(name, td.spec.Type, force, diag)
	default:
		d = diag(ErrUnsupportedShape, "%s shapes have no lossless primitive representation", describeShape(td.spec.Type))
	}
	if d != nil {
		return nil, d
	}
	t.Name = name
	t.Pos = td.pos
	r.memo[name] = t
	return t, nil
}

// resolveNewtype handles defined types over a builtin, an atomkit type, or
// another named type in the same package.
func (r *resolver) resolveNewtype(name string, expr ast.Expr, force string, diag diagFn) (*Target, *Diag) {
	// Enum classification needs the width declared right on the type:
	// a defined fixed-width integer type with constants of that type.
	if id, ok := expr.(*ast.Ident); ok {
		if kind, isKind := builtinKinds[id.Name]; isKind && kind != "Bool" && force != "newtype" {
			if consts := r.pkg.Constants(name); len(consts) > 0 {
				return &Target{
					Shape:    ShapeEnum,
					Repr:     kind,
					PackExpr: fmt.Sprintf("atomkit.%s(v)", kind),
					Variants: consts,
				}, nil
			}
		}
	}
	if force == "enum" {
		return nil, diag(ErrUnsupportedShape,
			"enum derivation requires declared constants of a fixed-width integer type")
	}

	c, d := r.resolveChainExpr(expr, diag)
	if d != nil {
		return nil, d
	}
	t := &Target{Shape: ShapeNewtype, Repr: c.repr, floatBacked: c.floatBacked}
	if c.via == "" {
		t.PackExpr = fmt.Sprintf("atomkit.%s(v)", c.repr)
		t.UnpackExpr = fmt.Sprintf("%s(src)", name)
	} else {
		t.PackExpr = fmt.Sprintf("%s(v).Pack()", c.via)
		t.UnpackSetup = fmt.Sprintf("var f %s", c.via)
		t.UnpackExpr = fmt.Sprintf("%s(f.Unpack(src))", name)
	}
	return t, nil
}

func (r *resolver) resolveStruct(name string, st *ast.StructType, diag diagFn) (*Target, *Diag) {
	count := 0
	var fieldName string
	var fieldType ast.Expr
	for _, f := range st.Fields.List {
		n := len(f.Names)
		if n == 0 {
			n = 1 // embedded
		}
		count += n
		if count == 1 {
			fieldType = f.Type
			if len(f.Names) > 0 {
				fieldName = f.Names[0].Name
			} else {
				fieldName = embeddedName(f.Type)
			}
		}
	}
	switch {
	case count == 0:
		return nil, diag(ErrNotSingleField, "struct has no fields; derivation is defined for exactly one field")
	case count > 1:
		return nil, diag(ErrNotSingleField, "struct has %d fields; derivation is defined for exactly one field", count)
	}

	c, d := r.resolveChainExpr(fieldType, diag)
	if d != nil {
		return nil, d
	}

	access := "v." + fieldName
	lit := func(expr string) string {
		return fmt.Sprintf("%s{%s: %s}", name, fieldName, expr)
	}
	fieldTypeName := exprString(fieldType)

	t := &Target{Shape: ShapeStruct, Repr: c.repr, floatBacked: c.floatBacked}
	switch {
	case c.via == "" && isKindExpr(fieldType):
		// The field already holds a kind value.
		t.PackExpr = access
		t.UnpackExpr = lit("src")
	case c.via == "":
		t.PackExpr = fmt.Sprintf("atomkit.%s(%s)", c.repr, access)
		t.UnpackExpr = lit(fmt.Sprintf("%s(src)", fieldTypeName))
	case c.via == fieldTypeName:
		// The field's own type implements Atom.
		t.PackExpr = access + ".Pack()"
		t.UnpackSetup = fmt.Sprintf("var f %s", c.via)
		t.UnpackExpr = lit("f.Unpack(src)")
	default:
		t.PackExpr = fmt.Sprintf("%s(%s).Pack()", c.via, access)
		t.UnpackSetup = fmt.Sprintf("var f %s", c.via)
		t.UnpackExpr = lit(fmt.Sprintf("%s(f.Unpack(src))", fieldTypeName))
	}
	return t, nil
}

// resolveChainExpr follows a type expression to a primitive kind.
func (r *resolver) resolveChainExpr(expr ast.Expr, diag diagFn) (*chain, *Diag) {
	switch e := expr.(type) {
	case *ast.Ident:
		under := e.Name
		if platformWidth[under] {
			return nil, diag(ErrMissingWidth,
				"%s has platform-defined width; declare a fixed-width representation such as int32 or uint64", under)
		}
		if kind, ok := builtinKinds[under]; ok {
			return &chain{repr: kind}, nil
		}
		if fa, ok := floatAtoms[under]; ok {
			return &chain{repr: fa.repr, via: fa.atom, floatBacked: true}, nil
		}
		if _, ok := r.pkg.Type(under); ok {
			return r.resolveChain(under, diag)
		}
		return nil, diag(ErrUnsupportedShape,
			"type %s cannot be mapped to a primitive kind; it must bottom out at a fixed-width builtin or an Atom implementation", under)

	case *ast.SelectorExpr:
		pkgID, ok := e.X.(*ast.Ident)
		if !ok || pkgID.Name != "atomkit" {
			return nil, diag(ErrUnsupportedShape,
				"cannot resolve the primitive representation of %s", exprString(e))
		}
		if kindTypes[e.Sel.Name] {
			return &chain{repr: e.Sel.Name}, nil
		}
		if a, ok := atomkitAtoms[e.Sel.Name]; ok {
			return &chain{repr: a.repr, via: "atomkit." + e.Sel.Name, floatBacked: a.float}, nil
		}
		return nil, diag(ErrUnsupportedShape,
			"atomkit.%s is not a primitive kind or built-in atom", e.Sel.Name)

	default:
		return nil, diag(ErrUnsupportedShape,
			"%s shapes have no lossless primitive representation", describeShape(expr))
	}
}

// resolveChain follows a named type declared in the package. Types that
// carry their own derivation become the delegation point: generated code
// routes through their Pack/Unpack so enum and built-in validation is
// preserved. Everything else must reduce to a plain conversion.
func (r *resolver) resolveChain(name string, diag diagFn) (*chain, *Diag) {
	if force, ok := r.requested[name]; ok {
		t, d := r.resolve(name, force)
		if d != nil {
			return nil, d
		}
		return &chain{repr: t.Repr, via: name, floatBacked: t.floatBacked}, nil
	}

	if r.visiting[name] {
		return nil, diag(ErrUnsupportedShape,
			"recursive representation chain never bottoms out at a primitive kind")
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	td, ok := r.pkg.Type(name)
	if !ok {
		return nil, diag(ErrUnsupportedShape, "type %s is not declared in the package", name)
	}
	if td.alias {
		return nil, diag(ErrUnsupportedShape, "type %s is an alias; derive the aliased type instead", name)
	}
	switch td.spec.Type.(type) {
	case *ast.StructType, *ast.InterfaceType:
		// Without a derivation of its own there is no conversion and no
		// Pack/Unpack to route through.
		return nil, diag(ErrUnsupportedShape,
			"type %s has no derived Atom implementation; mark it with a //atomkit:atom directive", name)
	}
	return r.resolveChainExpr(td.spec.Type, diag)
}

// applyCaps validates and records the requested capability derivations.
func (r *resolver) applyCaps(t *Target, caps []Capability) []Diag {
	var diags []Diag
	diag := func(format string, args ...any) {
		diags = append(diags, Diag{
			Code:    ErrCapabilityNotDerivable,
			Type:    t.Name,
			Pos:     t.Pos.String(),
			Message: fmt.Sprintf(format, args...),
		})
	}
	for _, c := range caps {
		switch c {
		case CapLogic:
			if t.Shape == ShapeEnum {
				diag("logic capability is refused for enumerations: bitwise combination of two valid discriminants can match no declared constant; implement the AtomLogic marker manually if the representation really is a bag of bits")
				continue
			}
			t.Logic = true
		case CapInteger:
			switch {
			case t.Shape == ShapeEnum:
				diag("integer capability is refused for enumerations: arithmetic on discriminants can match no declared constant; implement the AtomInteger marker manually if that is truly intended")
			case t.floatBacked:
				diag("integer capability is refused for float-backed types: arithmetic on IEEE-754 bit patterns is meaningless")
			case t.Repr == "Bool":
				diag("integer capability is refused: Bool supports no integer operations")
			default:
				t.Integer = true
			}
		default:
			diag("unknown capability %q (want logic or integer)", string(c))
		}
	}
	return diags
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	default:
		return ""
	}
}

// isKindExpr reports whether the expression names an atomkit kind type.
func isKindExpr(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkgID, ok := sel.X.(*ast.Ident)
	return ok && pkgID.Name == "atomkit" && kindTypes[sel.Sel.Name]
}

func describeShape(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.MapType:
		return "map"
	case *ast.ArrayType:
		return "array and slice"
	case *ast.ChanType:
		return "channel"
	case *ast.FuncType:
		return "function"
	case *ast.StarExpr:
		return "pointer"
	case *ast.InterfaceType:
		return "interface"
	case *ast.StructType:
		return "struct"
	default:
		return "this"
	}
}

func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(e.X)
	default:
		return fmt.Sprintf("%T", expr)
	}
}
