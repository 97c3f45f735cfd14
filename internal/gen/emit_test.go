package gen

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitFixture(t *testing.T, src string) []byte {
	t.Helper()
	dir := writeFixture(t, map[string]string{"types.go": src})
	pkg, err := ParsePackage(dir)
	require.NoError(t, err)
	targets, diags := Resolve(pkg, pkg.Directives)
	require.Empty(t, diags)
	out, err := Emit(pkg.Name, targets)
	require.NoError(t, err)
	return out
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestEmitNewtype(t *testing.T) {
	out := emitFixture(t, `package netstat

//atomkit:atom logic integer
type Port uint16
`)
	newGoldie(t).Assert(t, "newtype", out)
}

func TestEmitEnumAndStruct(t *testing.T) {
	out := emitFixture(t, `package paint

//atomkit:atom
type Color uint8

const (
	Red Color = iota
	Green
	Blue
)

//atomkit:atom
type Brightness struct {
	level float32
}
`)
	newGoldie(t).Assert(t, "enum_struct", out)
}

// The emitted source must parse and must already be gofmt-clean, so a
// second render of the same targets is byte-identical.
func TestEmitOutputParsesAndIsStable(t *testing.T) {
	src := `package metrics

//atomkit:atom integer
type gauge int64
`
	out := emitFixture(t, src)

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "atom_gen.go", out, parser.ParseComments)
	require.NoError(t, err)

	assert.Contains(t, string(out), "func newAtomicGauge(v gauge)")
	assert.Equal(t, out, emitFixture(t, src))
}
