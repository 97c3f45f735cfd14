package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/atomkit/internal/gen"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure (derivation diagnostics)
	ExitCommandError = 2 // Command error (bad paths, unparseable package, write failure)
)

// CLI error codes. Derivation diagnostics carry their own D-codes; these
// cover failures outside validation.
const (
	ErrCodeRun = "E201" // parse, manifest or write failure
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload, or all diagnostics on error
	Error  *CLIError   `json:"error,omitempty"` // first error's details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "D101".."D105" or "E201"
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// outputDiags renders derivation diagnostics. Validation failures fail
// closed with exit code 1.
func outputDiags(f *OutputFormatter, diags []gen.Diag) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("derivation failed with %d diagnostic(s)", len(diags)))

	if f.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    diags[0].Code,
				Message: diags[0].Message,
			},
			Data: diags, // all diagnostics
		}

		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(f.Writer, "✗ Derivation failed")
	fmt.Fprintln(f.Writer)
	for _, d := range diags {
		if d.Pos != "" {
			fmt.Fprintln(f.Writer, d.Pos)
		}
		fmt.Fprintf(f.Writer, "  %s %s: %s\n\n", d.Code, d.Type, d.Message)
	}
	return exitErr
}

// outputCommandError renders a hard (non-diagnostic) failure and maps it
// to exit code 2.
func outputCommandError(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeRun, err.Error(), nil)
	return WrapExitError(ExitCommandError, err.Error(), err)
}
