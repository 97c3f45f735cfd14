package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/atomkit/internal/gen"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Manifest string
}

// CheckReport is the check command's success payload.
type CheckReport struct {
	Package string       `json:"package"`
	Types   []TypeReport `json:"types"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <pkg-dir>",
		Short: "Validate derivation targets without generating",
		Long: `Validate every //atomkit:atom directive (and manifest entry) in the
package and report diagnostics. Nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", "YAML manifest listing derivation targets")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	res, diags, err := gen.Run(gen.Options{
		Dir:      dir,
		Manifest: opts.Manifest,
		Check:    true,
		Logger:   opts.Logger(cmd),
	})
	if err != nil {
		return outputCommandError(formatter, err)
	}
	if len(diags) > 0 {
		return outputDiags(formatter, diags)
	}

	if formatter.Format == "json" {
		return formatter.Success(CheckReport{
			Package: res.Package,
			Types:   typeReports(res.Targets),
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d derivation target(s) valid in package %s\n", len(res.Targets), res.Package)
	for _, r := range typeReports(res.Targets) {
		fmt.Fprintf(formatter.Writer, "  %s: %s over atomkit.%s\n", r.Name, r.Shape, r.Repr)
	}
	return nil
}
