package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// DevNodeRenderer renders dev node operation results
type DevNodeRenderer struct {
	out io.Writer
}

// NewDevNodeRenderer creates a new dev node renderer
func NewDevNodeRenderer(out io.Writer) *DevNodeRenderer {
	return &DevNodeRenderer{out: out}
}

// Render renders the result of a start, stop, restart or status operation
func (r *DevNodeRenderer) Render(result *usecase.ManageDevNodeResult) error {
	if result.Operation != usecase.DevNodeStatus {
		if result.Message != "" {
			fmt.Fprintln(r.out, FormatSuccess(result.Message))
		}
		if result.Operation == usecase.DevNodeStop {
			return nil
		}
	}
	if result.Status == nil {
		return nil
	}

	status := result.Status
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Node '%s':\n", result.Instance.Name)

	if !status.Running {
		fmt.Fprintf(r.out, "  Status: %s\n", color.New(color.FgRed).Sprint("not running"))
		if status.Error != "" {
			fmt.Fprintf(r.out, "  %s\n", FormatWarning(status.Error))
		}
		return nil
	}

	fmt.Fprintf(r.out, "  Status: %s (PID %d)\n", color.New(color.FgGreen).Sprint("running"), status.PID)
	fmt.Fprintf(r.out, "  RPC URL: %s\n", status.RPCURL)
	if status.RPCHealthy {
		fmt.Fprintf(r.out, "  Chain ID: %d\n", status.ChainID)
	} else {
		fmt.Fprintf(r.out, "  RPC: %s\n", color.New(color.FgRed).Sprint("not responding"))
		if status.Error != "" {
			fmt.Fprintf(r.out, "  %s\n", FormatWarning(status.Error))
		}
	}
	fmt.Fprintf(r.out, "  Logs: %s\n", status.LogFile)
	return nil
}
