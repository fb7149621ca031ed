package cli

import (
	"github.com/scubr/scubr-migrate/internal/cli/render"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var (
		params usecase.ListDeploymentsParams
		format string
	)

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"list", "ls"},
		Short:   "List deployments from the registry",
		Long: `List deployments recorded in .scubr/deployments.json.

Results are limited to the current namespace, and to the selected network's
chain when --network is given.`,
		Example: `  # List all deployments in the default namespace
  scubr deployments

  # List ScubrVideoToken deployments on sepolia as JSON
  scubr deployments -n sepolia --contract ScubrVideoToken --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(format); err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := resolveNetwork(cmd, app, false); err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringVar(&params.ContractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&params.AllNamespaces, "all-namespaces", false, "Include every namespace")
	cmd.Flags().StringVarP(&format, "format", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
