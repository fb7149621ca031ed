package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// ArtifactRepository resolves compiled contracts by name
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
}

// DeployRequest is a single contract creation
type DeployRequest struct {
	Network  *config.Network
	Artifact *models.Artifact
	Args     []any
}

// DeployReceipt is what the chain reports back for a mined creation transaction
type DeployReceipt struct {
	Address         common.Address
	TransactionHash common.Hash
	BlockNumber     uint64
	GasUsed         uint64
	From            common.Address
	ChainID         uint64
	// ConstructorArgs is the ABI encoded argument payload
	ConstructorArgs []byte
}

// ContractDeployer submits creation transactions and waits for them to be mined
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployReceipt, error)
}

// ChainIDFetcher asks a node which chain it serves
type ChainIDFetcher interface {
	FetchChainID(ctx context.Context, rpcURL string) (*big.Int, error)
}

// DeploymentRepository persists deployed instances
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	// LatestDeployment returns the most recent deployment of a contract in a namespace and chain
	LatestDeployment(ctx context.Context, namespace string, chainID uint64, contract string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	NextSequence(ctx context.Context, namespace string, chainID uint64, contract string) (int, error)
}

// MigrationLog records migration runs
type MigrationLog interface {
	RecordMigration(ctx context.Context, record *models.MigrationRecord) error
	ListMigrations(ctx context.Context) ([]*models.MigrationRecord, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Confirmer asks the operator before irreversible actions
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NetworkSelector picks a network when none was given on the command line
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// LocalConfigStore persists the namespace and network defaults in config.local.json
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	Path() string
}

// DevNode manages the local development chain
type DevNode interface {
	Start(ctx context.Context, instance *domain.DevNodeInstance) error
	Stop(ctx context.Context, instance *domain.DevNodeInstance) error
	Status(ctx context.Context, instance *domain.DevNodeInstance) (*domain.DevNodeStatus, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the migration process
type ExecutionStage string

const (
	StageResolving ExecutionStage = "Resolving"
	StageDeploying ExecutionStage = "Deploying"
	StageDeployed  ExecutionStage = "Deployed"
	StageCompleted ExecutionStage = "Completed"
	StageFailed    ExecutionStage = "Failed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
