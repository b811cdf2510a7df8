package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	// ErrInvalidLength is returned for a zero, negative or non-numeric length.
	ErrInvalidLength = errors.New("invalid password length")
	// ErrInvalidCount is returned for a zero, negative or non-numeric count.
	ErrInvalidCount = errors.New("invalid count")
	// ErrUnknownAlphabet is returned when the config names an alphabet
	// missing from the catalog.
	ErrUnknownAlphabet = errors.New("unknown alphabet")
)

// ArgumentError reports invalid command line or configuration input.
type ArgumentError struct {
	Arg string
	Err error
}

// Error returns the formatted error string with the offending argument.
func (e *ArgumentError) Error() string {
	if e.Arg != "" {
		return e.Arg + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// PartialFailureError is returned when some passwords of a batch could not
// be generated. The passwords that succeeded have already been written.
type PartialFailureError struct {
	Failed int
	Total  int
}

// Error implements the error interface.
func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d passwords could not be generated", e.Failed, e.Total)
}

// ExitCode returns the exit code for a partially failed batch (always 3).
func (e *PartialFailureError) ExitCode() int {
	return 3
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// FormatError formats an error with the "mkpasswd: " prefix and trailing newline.
func FormatError(err error) string {
	return fmt.Sprintf("mkpasswd: %s\n", err.Error())
}

// RunCLI executes the command with the given args, writing output to stdout
// and errors to stderr. It returns the appropriate exit code.
func RunCLI(cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprint(stderr, FormatError(err))
		return ExitCodeFromError(err)
	}
	return 0
}
