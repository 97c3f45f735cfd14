package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the atomgen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "atomgen",
		Short: "Derive atomkit Atom implementations from Go type declarations",
		Long: `atomgen scans a package for //atomkit:atom directives (or reads a YAML
manifest), validates the marked type shapes closed-world, and generates
the Pack/Unpack methods, capability markers and typed constructors that
bind those types to atomkit's atomic containers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// Logger builds the command logger. It writes to stderr so that --format
// json output on stdout stays parseable.
func (o *RootOptions) Logger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
