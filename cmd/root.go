// Package cmd contains the CLI commands for the mkpasswd application.
package cmd

import (
	"context"
	"io"

	"github.com/eykd/mkpasswd-go/internal/config"
	"github.com/eykd/mkpasswd-go/internal/entropy"
	"github.com/eykd/mkpasswd-go/password"
	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

// verbose holds the global --verbose flag state.
var verbose bool

func init() {
	rootCmd = NewRootCmd()
}

// GetVerbose returns the current verbose flag state.
func GetVerbose() bool {
	return verbose
}

// deps holds the collaborators the root command generates passwords with.
type deps struct {
	// sampleOne generates a single password with a one-shot source.
	sampleOne func(alphabet []byte, length int) ([]byte, error)
	// newSource creates the source reused across a batch.
	newSource func() (io.Reader, error)
	// configPath locates the default configuration file.
	configPath func() (string, error)
}

func defaultDeps() deps {
	return deps{
		sampleOne:  password.SampleDefault,
		newSource:  entropy.New,
		configPath: config.DefaultPath,
	}
}

// NewRootCmd creates a new root command instance wired to the operating
// system randomness source.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	cmd := newGenerateCmd(d)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.AddCommand(NewAlphabetsCmd())

	return cmd
}

// Execute runs the root command and returns any error.
// Deprecated: Use ExecuteContext instead for proper signal handling.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
