package adapters

import (
	"github.com/google/wire"
	"github.com/scubr/scubr-migrate/internal/adapters/anvil"
	"github.com/scubr/scubr-migrate/internal/adapters/artifacts"
	"github.com/scubr/scubr-migrate/internal/adapters/blockchain"
	internalconfig "github.com/scubr/scubr-migrate/internal/adapters/config"
	"github.com/scubr/scubr-migrate/internal/adapters/fs"
	"github.com/scubr/scubr-migrate/internal/adapters/interactive"
	"github.com/scubr/scubr-migrate/internal/adapters/repository/deployments"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// RepositorySet provides the file-backed deployment registry
var RepositorySet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
	wire.Bind(new(usecase.MigrationLog), new(*deployments.FileRepository)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// ArtifactsSet provides compiled contract lookup
var ArtifactsSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	blockchain.NewChainIDChecker,
	wire.Bind(new(usecase.ChainIDFetcher), new(*blockchain.ChainIDChecker)),
)

// DevNodeSet provides the local anvil node manager
var DevNodeSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.DevNode), new(*anvil.Manager)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	FSSet,
	ArtifactsSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
	DevNodeSet,
)
