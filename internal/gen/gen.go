package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultOutput is the generated file name when neither the --output flag
// nor the manifest overrides it.
const DefaultOutput = "atom_gen.go"

// Options configures one generator run.
type Options struct {
	// Dir is the target package directory.
	Dir string

	// Output overrides the generated file path. Relative paths are
	// resolved against Dir.
	Output string

	// Manifest is an optional YAML manifest whose entries are added to
	// the source directives.
	Manifest string

	// DryRun renders and validates but writes nothing.
	DryRun bool

	// Check validates only.
	Check bool

	Logger zerolog.Logger
}

// Result reports what a run produced.
type Result struct {
	Package string
	Targets []*Target

	// Path and Source are the output location and rendered bytes; both
	// are empty in check mode.
	Path   string
	Source []byte

	// Written reports whether the output file was created or replaced.
	Written bool
}

// Run parses the package, resolves every derivation request and, unless
// checking or dry-running, writes the generated file. Validation failures
// come back as diagnostics, separate from hard errors; a non-empty
// diagnostic slice means the run failed closed and nothing was written.
func Run(opts Options) (*Result, []Diag, error) {
	pkg, err := ParsePackage(opts.Dir)
	if err != nil {
		return nil, nil, err
	}
	opts.Logger.Debug().
		Str("package", pkg.Name).
		Int("directives", len(pkg.Directives)).
		Msg("parsed package")

	reqs := pkg.Directives
	output := opts.Output
	if opts.Manifest != "" {
		m, err := LoadManifest(opts.Manifest)
		if err != nil {
			return nil, nil, err
		}
		reqs = append(reqs, m.Requests()...)
		if output == "" {
			output = m.Output
		}
	}
	if len(reqs) == 0 {
		return nil, nil, fmt.Errorf("no derivation targets: %s has no %s directives and no manifest was given", opts.Dir, directivePrefix)
	}
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.TypeName] {
			return nil, nil, fmt.Errorf("duplicate derivation request for type %s", req.TypeName)
		}
		seen[req.TypeName] = true
	}

	targets, diags := Resolve(pkg, reqs)
	if len(diags) > 0 {
		return nil, diags, nil
	}

	res := &Result{Package: pkg.Name, Targets: targets}
	if opts.Check {
		return res, nil, nil
	}

	src, err := Emit(pkg.Name, targets)
	if err != nil {
		return nil, nil, err
	}
	if output == "" {
		output = DefaultOutput
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(opts.Dir, output)
	}
	res.Path = output
	res.Source = src

	if opts.DryRun {
		opts.Logger.Info().
			Str("path", output).
			Int("types", len(targets)).
			Msg("dry run, nothing written")
		return res, nil, nil
	}
	if old, err := os.ReadFile(output); err == nil && bytes.Equal(old, src) {
		opts.Logger.Debug().Str("path", output).Msg("output unchanged")
		return res, nil, nil
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing %s: %w", output, err)
	}
	res.Written = true
	opts.Logger.Info().
		Str("path", output).
		Int("types", len(targets)).
		Msg("wrote generated atoms")
	return res, nil, nil
}
