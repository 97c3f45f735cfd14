package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portSource = `package netstat

//atomkit:atom logic integer
type Port uint16
`

func TestRunWritesGeneratedFile(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": portSource})

	res, diags, err := Run(Options{Dir: dir, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Empty(t, diags)

	assert.True(t, res.Written)
	assert.Equal(t, filepath.Join(dir, DefaultOutput), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Source, data)
	assert.Contains(t, string(data), generatedHeader)

	// A second run re-parses the directory, skips the generated file and
	// leaves the identical output alone.
	res2, diags, err := Run(Options{Dir: dir, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Empty(t, diags)
	assert.False(t, res2.Written)
	assert.Equal(t, res.Source, res2.Source)
}

func TestRunCheckWritesNothing(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": portSource})

	res, diags, err := Run(Options{Dir: dir, Check: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Empty(t, diags)

	assert.Empty(t, res.Path)
	require.Len(t, res.Targets, 1)
	assert.Equal(t, "Port", res.Targets[0].Name)
	assert.NoFileExists(t, filepath.Join(dir, DefaultOutput))
}

func TestRunDryRun(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": portSource})

	res, diags, err := Run(Options{Dir: dir, DryRun: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Empty(t, diags)

	assert.False(t, res.Written)
	assert.NotEmpty(t, res.Source)
	assert.NoFileExists(t, res.Path)
}

func TestRunFailsClosedOnDiagnostics(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": `package bad

//atomkit:atom
type Good uint32

//atomkit:atom
type Half struct {
	a uint16
	b uint16
}
`})

	res, diags, err := Run(Options{Dir: dir, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Nil(t, res)
	require.Len(t, diags, 1)
	assert.Equal(t, ErrNotSingleField, diags[0].Code)
	assert.NoFileExists(t, filepath.Join(dir, DefaultOutput))
}

func TestRunManifest(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": `package flags

type Mask uint32

const ReadMask Mask = 1
`})
	manifest := filepath.Join(t.TempDir(), "atoms.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`output: masks_gen.go
types:
  - name: Mask
    capabilities: [logic]
    shape: newtype
`), 0o644))

	res, diags, err := Run(Options{Dir: dir, Manifest: manifest, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Empty(t, diags)

	assert.Equal(t, filepath.Join(dir, "masks_gen.go"), res.Path)
	require.Len(t, res.Targets, 1)
	assert.True(t, res.Targets[0].Logic)
	assert.Equal(t, ShapeNewtype, res.Targets[0].Shape)
	assert.FileExists(t, res.Path)
}

func TestRunRejectsDuplicateRequests(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": portSource})
	manifest := filepath.Join(t.TempDir(), "atoms.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`types:
  - name: Port
`), 0o644))

	_, _, err := Run(Options{Dir: dir, Manifest: manifest, Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate derivation request")
}

func TestRunNoTargets(t *testing.T) {
	dir := writeFixture(t, map[string]string{"types.go": "package empty\n\ntype plain uint8\n"})

	_, _, err := Run(Options{Dir: dir, Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no derivation targets")
}

func TestLoadManifestValidation(t *testing.T) {
	writeManifest := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "atoms.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("no types", func(t *testing.T) {
		_, err := LoadManifest(writeManifest(t, "output: x_gen.go\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lists no types")
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := LoadManifest(writeManifest(t, "types:\n  - capabilities: [logic]\n"))
		require.Error(t, err)
	})

	t.Run("bad shape", func(t *testing.T) {
		_, err := LoadManifest(writeManifest(t, "types:\n  - name: Mask\n    shape: variant\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown shape "variant"`)
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := LoadManifest(writeManifest(t, "{{nope"))
		require.Error(t, err)
	})
}
