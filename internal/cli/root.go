// Package cli provides the command-line interface for comply.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/complyhq/comply/internal/cli/commands"
	"github.com/complyhq/comply/internal/cli/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "comply",
		Short: "comply - code quality compliance checker",
		Long: `comply analyzes source files against a configurable set of
code-quality rules (documentation, typing, complexity, style) and produces a
deterministic violation report.

Front ends extract a normalized symbol model per file; rules evaluate that
model concurrently across a worker pool, and results merge into one stable,
sorted report regardless of worker count.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cmd.SetContext(commands.WithRunContext(cmd.Context(), &commands.RunContext{
				Cfg:    cfg,
				Logger: logger,
			}))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: comply.yaml)")
	pf.StringP("format", "f", "", "output format: auto, text, json")
	pf.Bool("verbose", false, "enable debug logging")
	pf.Int("workers", 0, "worker pool size (0 = one per CPU)")
	pf.String("fail-on", "", "minimum severity causing a failing exit: error, warning, info, hint")

	rootCmd.AddCommand(
		commands.NewCheckCommand(),
		commands.NewRulesCommand(),
		commands.NewHistoryCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)
	return rootCmd
}
