// Package cli implements the reclaim command tree.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diskreclaim/reclaim/internal/config"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	output     string
	verbose    bool
	quiet      bool
}

// Execute runs the CLI with the process arguments.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree. Configuration is loaded once in the
// persistent pre-run and handed to subcommands by value.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	var (
		cfg config.Config
		log zerolog.Logger
	)

	cmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Disk usage analysis and reclaimable cache discovery",
		Long: heredoc.Doc(`
			reclaim scans filesystem subtrees to compute accurate, hard-link
			deduplicated disk usage and to identify cache and build-artifact
			directories (node_modules, target, build, ...) that are safe to
			delete, validated against marker files next to them.
		`),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log = newLogger(opts)

			loaded, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			cfg = loaded

			// The flag wins over the config file.
			if cmd.Flags().Changed("output") || cfg.Output == "" {
				cfg.Output = opts.output
			}

			if !slices.Contains([]string{"table", "json"}, cfg.Output) {
				return fmt.Errorf("invalid output format %q: must be table or json", cfg.Output)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Log errors only")

	cmd.AddCommand(
		newDuCmd(&cfg, &log),
		newCachesCmd(&cfg, &log),
		newCleanCmd(&cfg, &log),
		newVersionCmd(version),
	)

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// newLogger builds the stderr console logger from the verbosity flags.
func newLogger(opts *rootOptions) zerolog.Logger {
	level := zerolog.InfoLevel

	switch {
	case opts.verbose:
		level = zerolog.DebugLevel
	case opts.quiet:
		level = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
