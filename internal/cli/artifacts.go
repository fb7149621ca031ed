package cli

import (
	"github.com/scubr/scubr-migrate/internal/cli/render"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewArtifactsCmd creates the artifacts command
func NewArtifactsCmd() *cobra.Command {
	var params usecase.ListArtifactsParams

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "List compiled contracts available to migrations",
		Long: `List the contract artifacts found under artifacts_dir (build/contracts by default).

Both Truffle and Foundry artifact layouts are recognised.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListArtifacts.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewArtifactsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&params.DeployableOnly, "deployable", false, "Hide interfaces and abstract contracts")

	return cmd
}
