package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MigrateRenderer renders the outcome of a migrate run
type MigrateRenderer struct {
	out io.Writer
}

// NewMigrateRenderer creates a new migrate renderer
func NewMigrateRenderer(out io.Writer) *MigrateRenderer {
	return &MigrateRenderer{out: out}
}

// Render prints the dry-run plan, or the executed migrations and their deployments
func (r *MigrateRenderer) Render(result *usecase.RunMigrationsResult) error {
	if result == nil {
		return nil
	}

	header := color.New(color.FgCyan, color.Bold)
	network := "unknown"
	if result.Network != nil {
		network = fmt.Sprintf("%s (chain %d)", result.Network.Name, result.Network.ChainID)
	}

	if result.DryRun {
		header.Fprintf(r.out, "\nDry run on %s, namespace %s\n\n", network, result.Namespace)
		r.renderPlan(result.Plan)
		return nil
	}

	header.Fprintf(r.out, "\nMigrations on %s, namespace %s\n\n", network, result.Namespace)
	r.renderRecords(result.Records)

	if len(result.Deployments) > 0 {
		fmt.Fprintln(r.out)
		r.renderDeployments(result.Deployments)
	}
	return nil
}

func (r *MigrateRenderer) renderPlan(plan []usecase.PlannedDeployment) {
	if len(plan) == 0 {
		fmt.Fprintln(r.out, "Nothing to deploy")
		return
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"#", "MIGRATION", "CONTRACT", "CONSTRUCTOR", "ARGS"})
	for i, step := range plan {
		t.AppendRow(table.Row{i + 1, step.Migration, step.Contract, step.Constructor, formatArgs(step.Args)})
	}
	t.Render()
	fmt.Fprintf(r.out, "\n%d contract(s) would be deployed, no transactions sent\n", len(plan))
}

func (r *MigrateRenderer) renderRecords(records []*models.MigrationRecord) {
	t := newTable(r.out)
	t.AppendHeader(table.Row{"MIGRATION", "STATUS", "DEPLOYMENTS", "DURATION"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Name,
			formatStatus(rec.Status),
			len(rec.DeploymentIDs),
			rec.Duration().Round(time.Millisecond).String(),
		})
	}
	t.Render()

	for _, rec := range records {
		if rec.Error != "" {
			fmt.Fprintln(r.out, FormatError(rec.Error))
		}
	}
}

func (r *MigrateRenderer) renderDeployments(deployments []*models.Deployment) {
	t := newTable(r.out)
	t.AppendHeader(table.Row{"CONTRACT", "ADDRESS", "TX", "BLOCK", "GAS"})
	for _, d := range deployments {
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprintf("%s#%d", d.ContractName, d.Sequence),
			d.Address.Hex(),
			shortHash(d.TransactionHash.Hex()),
			d.BlockNumber,
			d.GasUsed,
		})
	}
	t.Render()
}

// formatStatus turns SUCCEEDED into a colored "Succeeded"
func formatStatus(status models.MigrationStatus) string {
	label := cases.Title(language.English).String(strings.ToLower(string(status)))
	switch status {
	case models.MigrationStatusSucceeded:
		return color.New(color.FgGreen).Sprint(label)
	case models.MigrationStatusFailed:
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}

func formatArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return strings.Join(parts, ", ")
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	return t
}
