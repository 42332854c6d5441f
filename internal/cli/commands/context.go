// Package commands implements the comply subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/complyhq/comply/internal/cli/config"
	"github.com/complyhq/comply/internal/cli/output"
)

// RunContext carries the loaded configuration and logger from the root
// command into subcommands.
type RunContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

type runContextKey struct{}

// WithRunContext stores the run context on a context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// GetRunContext retrieves the run context, falling back to defaults so
// commands stay usable in tests that bypass the root command.
func GetRunContext(cmd *cobra.Command) *RunContext {
	if rc, ok := cmd.Context().Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return &RunContext{
		Cfg:    &config.Config{Format: config.DefaultFormat, FailOn: config.DefaultFailOn},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// newRenderer builds the renderer for a command, honoring a per-command
// format override before the configured one.
func newRenderer(cmd *cobra.Command, cfg *config.Config, override string) *output.Renderer {
	mode := output.Mode(cfg.Format)
	if override != "" {
		mode = output.Mode(override)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}
