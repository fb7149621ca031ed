package cli

import (
	"context"
	"fmt"

	"github.com/scubr/scubr-migrate/internal/adapters/progress"
	"github.com/scubr/scubr-migrate/internal/app"
	"github.com/scubr/scubr-migrate/internal/config"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipsApp reports whether a command runs without a project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scubr",
		Short: "Contract migrations for the Scubr token suite",
		Long: `scubr runs numbered contract migrations against an EVM network, deploying
ScubrEngagementToken and ScubrVideoToken and recording every deployment in a
local registry under .scubr/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = progress.NewSpinnerSink()
			if v.GetBool("non_interactive") {
				sink = progress.NewPlainSink()
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			cancel := context.CancelFunc(func() {})
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.PostRun = func(cmd *cobra.Command, args []string) {
				appInstance.Close()
				cancel()
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("namespace", "s", "", "Deployment namespace (defaults to 'default')")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from scubr.toml [networks] (e.g. development, sepolia)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewMigrateCmd(), NewStatusCmd(), NewDeploymentsCmd(), NewShowCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewArtifactsCmd(), NewNetworksCmd(), NewConfigCmd(), NewDevCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// resolveNetwork makes sure the active network is selected and carries a chain ID.
// With no --network it prompts, or falls back to the only configured network.
func resolveNetwork(cmd *cobra.Command, app *app.App, required bool) error {
	ctx := cmd.Context()
	name := ""
	if app.Config.Network != nil {
		name = app.Config.Network.Name
	}

	if name == "" {
		if !required {
			return nil
		}
		selected, err := app.Selector.SelectNetwork(ctx, app.Networks.GetNetworks(ctx))
		if err != nil {
			return fmt.Errorf("select a network with --network: %w", err)
		}
		name = selected
	}

	network, err := app.Networks.ResolveNetwork(ctx, name)
	if err != nil {
		return err
	}
	app.Config.Network = network
	app.Log.Debug("network resolved", "network", network.Name, "chainId", network.ChainID)
	return nil
}
