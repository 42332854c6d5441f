package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/complyhq/comply/internal/cli/output"
	"github.com/complyhq/comply/internal/state"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	rc := GetRunContext(cmd)
	r := newRenderer(cmd, rc.Cfg, "")

	store, err := state.Open(rc.Cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	if len(runs) == 0 {
		r.Println("no recorded runs")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RUN", "WHEN", "FILES", "VIOLATIONS", "ERR", "WARN", "INFO", "HINT", "STATUS"})
	for _, run := range runs {
		status := "complete"
		if run.Incomplete {
			status = "incomplete"
		}
		t.AppendRow(table.Row{
			shortID(run.ID),
			run.CreatedAt.Local().Format(time.DateTime),
			run.Files, run.Violations,
			run.Errors, run.Warnings, run.Infos, run.Hints,
			status,
		})
	}
	t.Render()
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
