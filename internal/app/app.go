package app

import (
	"log/slog"

	"github.com/scubr/scubr-migrate/internal/adapters/blockchain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Networks usecase.NetworkResolver
	Selector usecase.NetworkSelector

	// Use cases
	RunMigrations   *usecase.RunMigrations
	MigrationStatus *usecase.MigrationStatus
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	ListArtifacts   *usecase.ListArtifacts
	ListNetworks    *usecase.ListNetworks
	ManageDevNode   *usecase.ManageDevNode
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig
	RemoveConfig    *usecase.RemoveConfig

	// Adapters holding connections that must be released
	Deployer *blockchain.Deployer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	networks usecase.NetworkResolver,
	selector usecase.NetworkSelector,
	runMigrations *usecase.RunMigrations,
	migrationStatus *usecase.MigrationStatus,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listArtifacts *usecase.ListArtifacts,
	listNetworks *usecase.ListNetworks,
	manageDevNode *usecase.ManageDevNode,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	deployer *blockchain.Deployer,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Networks:        networks,
		Selector:        selector,
		RunMigrations:   runMigrations,
		MigrationStatus: migrationStatus,
		ListDeployments: listDeployments,
		ShowDeployment:  showDeployment,
		ListArtifacts:   listArtifacts,
		ListNetworks:    listNetworks,
		ManageDevNode:   manageDevNode,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		RemoveConfig:    removeConfig,
		Deployer:        deployer,
	}, nil
}

// Close releases RPC connections opened during the command
func (a *App) Close() {
	if a.Deployer != nil {
		a.Deployer.Close()
	}
}
