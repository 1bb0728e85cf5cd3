// Package cmd implements the wheelframes CLI commands.
//
// The root command loads the wheel configuration and dispatches to
// subcommands (trace, render, config).
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/progresswheel/pkg/config"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// options holds the persistent flags shared by all subcommands.
type options struct {
	configPath string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "wheelframes",
		Short: "Inspect progress wheel animations",
		Long: `wheelframes drives a progress wheel engine with a synthetic clock and
prints or renders the frames it produces.

Configuration is read from --config, or from the nearest wheel.yaml found
walking up from the current directory. Without one the defaults are used.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to wheel.yaml")

	root.AddCommand(
		newTraceCommand(opts),
		newRenderCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadConfig resolves the wheel configuration for a command.
func (o *options) loadConfig() (wheel.Config, error) {
	path := o.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return wheel.Config{}, err
		}
		found, err := config.Find(wd)
		if stderrors.Is(err, os.ErrNotExist) {
			return wheel.DefaultConfig(), nil
		}
		if err != nil {
			return wheel.Config{}, err
		}
		path = found
	}

	f, err := config.Load(path)
	if err != nil {
		return wheel.Config{}, err
	}
	return f.Resolve(wheel.DefaultConfig())
}
