package cli

import (
	"github.com/scubr/scubr-migrate/internal/cli/render"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDevCmd creates the dev command with subcommands
func NewDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Manage the local development chain",
		Long: `Manage a local anvil node serving the development network.

The node runs in the background; its PID and log files live in the OS temp dir.`,
	}

	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStart, "Start the local node", "Start a local anvil node. Fails if already running."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStop, "Stop the local node", "Stop the local anvil node if running."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeRestart, "Restart the local node", "Stop and start the local anvil node."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStatus, "Show local node status", "Show process and RPC status of the local anvil node."))

	return cmd
}

// devNodeFlags holds common flags for dev node commands
type devNodeFlags struct {
	name    string
	port    string
	chainID string
}

func newDevNodeCmd(op usecase.DevNodeOperation, short, long string) *cobra.Command {
	flags := &devNodeFlags{}

	cmd := &cobra.Command{
		Use:   string(op),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevNodeCommand(cmd, op, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "anvil", "Instance name")
	cmd.Flags().StringVar(&flags.port, "port", "8545", "RPC port to bind")
	cmd.Flags().StringVar(&flags.chainID, "chain-id", "", "Chain ID to use for the instance (anvil default 31337)")
	return cmd
}

// runDevNodeCommand executes a dev node operation
func runDevNodeCommand(cmd *cobra.Command, op usecase.DevNodeOperation, flags *devNodeFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageDevNode.Execute(cmd.Context(), usecase.ManageDevNodeParams{
		Operation: op,
		Name:      flags.name,
		Port:      flags.port,
		ChainID:   flags.chainID,
	})
	if err != nil {
		return err
	}

	return render.NewDevNodeRenderer(cmd.OutOrStdout()).Render(result)
}
