package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// ArtifactsRenderer renders the compiled contracts available to migrations
type ArtifactsRenderer struct {
	out io.Writer
}

// NewArtifactsRenderer creates a new artifacts renderer
func NewArtifactsRenderer(out io.Writer) *ArtifactsRenderer {
	return &ArtifactsRenderer{out: out}
}

// Render renders one row per artifact
func (r *ArtifactsRenderer) Render(result *usecase.ListArtifactsResult) error {
	if len(result.Artifacts) == 0 {
		fmt.Fprintln(r.out, "No artifacts found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"CONTRACT", "FORMAT", "CONSTRUCTOR", "SOURCE"})

	for _, a := range result.Artifacts {
		name := color.New(color.FgGreen, color.Bold).Sprint(a.Name)
		if !a.IsDeployable() {
			name = color.New(color.Faint).Sprintf("%s (abstract)", a.Name)
		}
		t.AppendRow(table.Row{name, string(a.Format), a.ConstructorSignature(), a.SourcePath})
	}
	t.Render()

	fmt.Fprintf(r.out, "\nTotal artifacts: %d\n", len(result.Artifacts))
	return nil
}
