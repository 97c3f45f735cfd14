package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/atomkit/internal/gen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output   string // generated file path
	Manifest string // YAML manifest path
	DryRun   bool
}

// TypeReport describes one derived type in command output.
type TypeReport struct {
	Name         string   `json:"name"`
	Shape        string   `json:"shape"`
	Repr         string   `json:"repr"`
	Capabilities []string `json:"capabilities,omitempty"`
	Constructor  string   `json:"constructor"`
}

// GenerateReport is the generate command's success payload.
type GenerateReport struct {
	Package string       `json:"package"`
	Types   []TypeReport `json:"types"`
	Path    string       `json:"path,omitempty"`
	Written bool         `json:"written"`
	DryRun  bool         `json:"dry_run,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <pkg-dir>",
		Short: "Generate Atom implementations for a package",
		Long: `Generate Pack/Unpack methods, capability markers and constructors for
every type in the package marked with a //atomkit:atom directive or
listed in the manifest.

Validation is closed-world: any diagnostic suppresses the whole output
file and the command exits non-zero.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "generated file path (default "+gen.DefaultOutput+")")
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", "YAML manifest listing derivation targets")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate and render without writing")

	return cmd
}

func runGenerate(opts *GenerateOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	res, diags, err := gen.Run(gen.Options{
		Dir:      dir,
		Output:   opts.Output,
		Manifest: opts.Manifest,
		DryRun:   opts.DryRun,
		Logger:   opts.Logger(cmd),
	})
	if err != nil {
		return outputCommandError(formatter, err)
	}
	if len(diags) > 0 {
		return outputDiags(formatter, diags)
	}

	return outputGenerateSuccess(formatter, res, opts.DryRun)
}

// typeReports converts resolved targets into output rows.
func typeReports(targets []*gen.Target) []TypeReport {
	reports := make([]TypeReport, len(targets))
	for i, t := range targets {
		var caps []string
		if t.Logic {
			caps = append(caps, string(gen.CapLogic))
		}
		if t.Integer {
			caps = append(caps, string(gen.CapInteger))
		}
		reports[i] = TypeReport{
			Name:         t.Name,
			Shape:        t.Shape.String(),
			Repr:         t.Repr,
			Capabilities: caps,
			Constructor:  t.CtorName(),
		}
	}
	return reports
}

func outputGenerateSuccess(formatter *OutputFormatter, res *gen.Result, dryRun bool) error {
	if formatter.Format == "json" {
		return formatter.Success(GenerateReport{
			Package: res.Package,
			Types:   typeReports(res.Targets),
			Path:    res.Path,
			Written: res.Written,
			DryRun:  dryRun,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Derived %d atom(s) in package %s\n\n", len(res.Targets), res.Package)
	for _, r := range typeReports(res.Targets) {
		line := fmt.Sprintf("  %s: %s over atomkit.%s", r.Name, r.Shape, r.Repr)
		for _, c := range r.Capabilities {
			line += " +" + c
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	fmt.Fprintln(formatter.Writer)

	switch {
	case dryRun:
		fmt.Fprintf(formatter.Writer, "Dry run: would write %s\n", res.Path)
	case res.Written:
		fmt.Fprintf(formatter.Writer, "Wrote %s\n", res.Path)
	default:
		fmt.Fprintf(formatter.Writer, "%s is up to date\n", res.Path)
	}
	return nil
}
