package cli

import (
	"encoding/json"
	"fmt"

	"github.com/scubr/scubr-migrate/internal/cli/render"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "show <deployment>",
		Short: "Show detailed deployment information from registry",
		Long: `Show detailed information about a specific deployment.

You can specify deployments using:
- Contract name, resolved to its latest instance: "ScubrVideoToken"
- Full deployment ID: "default/1337/ScubrVideoToken#2"`,
		Example: `  scubr show ScubrEngagementToken
  scubr show default/1337/ScubrVideoToken#1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := resolveNetwork(cmd, app, false); err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{Ref: args[0]})
			if err != nil {
				return err
			}

			if outputJSON {
				data, err := json.MarshalIndent(deployment, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal deployment: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout()).Render(deployment)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output in JSON format")

	return cmd
}
