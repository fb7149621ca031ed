package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// Session is the deployment handle passed to a migration. It keeps the instances
// deployed during one migration and records each one in the registry.
type Session struct {
	namespace string
	network   *config.Network
	migration string

	artifacts ArtifactRepository
	deployer  ContractDeployer
	repo      DeploymentRepository
	progress  ProgressSink
	log       *slog.Logger

	instances map[string]*models.Deployment
	deployed  []*models.Deployment
}

// SessionParams configures a new Session
type SessionParams struct {
	Namespace string
	Network   *config.Network
	Migration string
	Artifacts ArtifactRepository
	Deployer  ContractDeployer
	Repo      DeploymentRepository
	Progress  ProgressSink
	Log       *slog.Logger
}

// NewSession creates a session bound to one namespace and network
func NewSession(p SessionParams) *Session {
	progress := p.Progress
	if progress == nil {
		progress = NopProgress{}
	}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		namespace: p.Namespace,
		network:   p.Network,
		migration: p.Migration,
		artifacts: p.Artifacts,
		deployer:  p.Deployer,
		repo:      p.Repo,
		progress:  progress,
		log:       log,
		instances: make(map[string]*models.Deployment),
	}
}

// Deploy resolves the artifact, sends its creation transaction and records the instance
func (s *Session) Deploy(ctx context.Context, name string, args ...any) (*models.Deployment, error) {
	artifact, err := s.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, &domain.DeploymentErr{Contract: name, Err: err}
	}

	if !artifact.IsDeployable() {
		return nil, &domain.DeploymentErr{Contract: name, Err: fmt.Errorf("%w: no creation bytecode", domain.ErrInvalidArtifact)}
	}

	if want := len(artifact.ABI.Constructor.Inputs); want != len(args) {
		return nil, &domain.DeploymentErr{
			Contract: name,
			Err:      fmt.Errorf("%s takes %d arguments, got %d", artifact.ConstructorSignature(), want, len(args)),
		}
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying %s", name),
		Spinner: true,
	})
	s.log.Debug("deploying contract", "contract", name, "network", s.network.Name, "args", len(args))

	receipt, err := s.deployer.Deploy(ctx, DeployRequest{
		Network:  s.network,
		Artifact: artifact,
		Args:     args,
	})
	if err != nil {
		s.progress.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: fmt.Sprintf("%s failed", name)})
		return nil, &domain.DeploymentErr{Contract: name, Err: err}
	}

	chainID := s.network.ChainID
	if receipt.ChainID != 0 {
		chainID = receipt.ChainID
	}

	seq, err := s.repo.NextSequence(ctx, s.namespace, chainID, name)
	if err != nil {
		return nil, fmt.Errorf("allocate registry id for %s: %w", name, err)
	}

	dep := &models.Deployment{
		ID:              models.NewDeploymentID(s.namespace, chainID, name, seq),
		Namespace:       s.namespace,
		Network:         s.network.Name,
		ChainID:         chainID,
		ContractName:    name,
		Sequence:        seq,
		Address:         receipt.Address,
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     receipt.BlockNumber,
		GasUsed:         receipt.GasUsed,
		Deployer:        receipt.From,
		ArtifactPath:    artifact.ArtifactPath,
		Migration:       s.migration,
		CreatedAt:       time.Now().UTC(),
	}
	if len(receipt.ConstructorArgs) > 0 {
		dep.ConstructorArgs = "0x" + hex.EncodeToString(receipt.ConstructorArgs)
	}

	// The contract exists on chain from here on, so keep it even if the registry write fails.
	s.instances[name] = dep
	s.deployed = append(s.deployed, dep)

	if err := s.repo.SaveDeployment(ctx, dep); err != nil {
		return dep, fmt.Errorf("record deployment of %s at %s: %w", name, dep.Address.Hex(), err)
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageDeployed,
		Message:  fmt.Sprintf("%s deployed at %s", name, dep.Address.Hex()),
		Metadata: dep,
	})
	s.log.Info("contract deployed", "contract", name, "address", dep.Address.Hex(), "tx", dep.TransactionHash.Hex())

	return dep, nil
}

// Deployed returns the instance deployed in this session, or the latest recorded one
func (s *Session) Deployed(ctx context.Context, name string) (*models.Deployment, error) {
	if dep, ok := s.instances[name]; ok {
		return dep, nil
	}

	dep, err := s.repo.LatestDeployment(ctx, s.namespace, s.network.ChainID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s on %s: %w", name, s.network.Name, domain.ErrNotDeployed)
		}
		return nil, err
	}
	return dep, nil
}

// Deployments lists the instances created by this session in deployment order
func (s *Session) Deployments() []*models.Deployment {
	return append([]*models.Deployment(nil), s.deployed...)
}
