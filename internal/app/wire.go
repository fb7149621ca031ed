//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/scubr/scubr-migrate/internal/adapters"
	"github.com/scubr/scubr-migrate/internal/config"
	"github.com/scubr/scubr-migrate/internal/logging"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunMigrations,
		usecase.NewMigrationStatus,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListArtifacts,
		usecase.NewListNetworks,
		usecase.NewManageDevNode,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
