package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the configured networks with their chain IDs
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in scubr.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "RPC URL", "SENDER", "CONFIRM"})

	for _, n := range result.Networks {
		marker := " "
		if n.Name == result.Current {
			marker = color.New(color.FgGreen).Sprint("*")
		}
		if n.Error != nil {
			t.AppendRow(table.Row{marker, n.Name, color.New(color.FgRed).Sprintf("❌ %v", n.Error), "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			marker,
			n.Name,
			n.ChainID,
			n.RPCURL,
			yesNo(n.HasSender),
			yesNo(n.Confirm),
		})
	}
	t.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return color.New(color.FgGreen).Sprint("yes")
	}
	return color.New(color.Faint).Sprint("no")
}
