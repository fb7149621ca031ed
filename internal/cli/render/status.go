package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// StatusRenderer renders which migrations have run
type StatusRenderer struct {
	out io.Writer
}

// NewStatusRenderer creates a new migration status renderer
func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

// Render renders one row per registered migration
func (r *StatusRenderer) Render(result *usecase.MigrationStatusResult) error {
	scope := result.Namespace
	if result.Network != "" {
		scope = fmt.Sprintf("%s on %s", result.Namespace, result.Network)
	}
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Migrations (%s)\n\n", scope)

	t := newTable(r.out)
	t.AppendHeader(table.Row{"ID", "MIGRATION", "LAST RUN", "STATUS", "RUNS"})
	for _, m := range result.Migrations {
		lastRun := color.New(color.Faint).Sprint("never")
		status := color.New(color.FgYellow).Sprint("Pending")
		if m.LastRun != nil {
			lastRun = m.LastRun.StartedAt.Format("2006-01-02 15:04:05")
			status = formatStatus(m.LastRun.Status)
		}
		t.AppendRow(table.Row{m.ID, m.Name, lastRun, status, m.Runs})
	}
	t.Render()
	return nil
}
