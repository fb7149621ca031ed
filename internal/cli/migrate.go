package cli

import (
	"github.com/scubr/scubr-migrate/internal/cli/render"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	var params usecase.RunMigrationsParams

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run contract migrations against a network",
		Long: `Run the registered migrations in ID order against the selected network.

Each migration deploys its contracts, waits for the creation transactions to be
mined and records the resulting addresses in .scubr/deployments.json. Running a
migration again deploys fresh instances with the next sequence number.

Networks flagged with confirm = true in scubr.toml ask before broadcasting.`,
		Example: `  # Deploy to the local development chain
  scubr migrate

  # Preview what would be deployed on sepolia
  scubr migrate -n sepolia --dry-run

  # Run only migration 2 without prompting
  scubr migrate -n sepolia --from 2 --to 2 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := resolveNetwork(cmd, app, true); err != nil {
				return err
			}

			result, err := app.RunMigrations.Run(cmd.Context(), params)
			if result != nil {
				if renderErr := render.NewMigrateRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil {
					return renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&params.From, "from", 0, "First migration ID to run")
	cmd.Flags().IntVar(&params.To, "to", 0, "Last migration ID to run")
	cmd.Flags().BoolVar(&params.DryRun, "dry-run", false, "Resolve artifacts and arguments without sending transactions")
	cmd.Flags().BoolVarP(&params.Yes, "yes", "y", false, "Skip the broadcast confirmation")

	return cmd
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which migrations have run",
		Long: `Show every registered migration with its latest run in the current namespace.

With --network the history is limited to that network's chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := resolveNetwork(cmd, app, false); err != nil {
				return err
			}

			result, err := app.MigrationStatus.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewStatusRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
