package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/migrations"
)

// RunMigrationsParams contains parameters for a migrate run
type RunMigrationsParams struct {
	From   int  // first migration ID to run, 0 for the first registered
	To     int  // last migration ID to run, 0 for the last registered
	DryRun bool // resolve and validate without sending transactions
	Yes    bool // skip the broadcast confirmation
}

// PlannedDeployment is a deployment a dry run would perform
type PlannedDeployment struct {
	Migration   string
	Contract    string
	Constructor string
	Args        []any
}

// RunMigrationsResult contains the outcome of a migrate run
type RunMigrationsResult struct {
	Network     *config.Network
	Namespace   string
	DryRun      bool
	Records     []*models.MigrationRecord
	Deployments []*models.Deployment
	Plan        []PlannedDeployment
}

// RunMigrations executes the selected migrations in ID order against one network
type RunMigrations struct {
	config     *config.RuntimeConfig
	artifacts  ArtifactRepository
	deployer   ContractDeployer
	repo       DeploymentRepository
	history    MigrationLog
	confirmer  Confirmer
	progress   ProgressSink
	log        *slog.Logger
	migrations []migrations.Migration
}

// NewRunMigrations creates a new RunMigrations use case
func NewRunMigrations(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	repo DeploymentRepository,
	history MigrationLog,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *RunMigrations {
	return &RunMigrations{
		config:     cfg,
		artifacts:  artifacts,
		deployer:   deployer,
		repo:       repo,
		history:    history,
		confirmer:  confirmer,
		progress:   progress,
		log:        log,
		migrations: migrations.All(),
	}
}

// WithMigrations replaces the registered migration list
func (uc *RunMigrations) WithMigrations(list []migrations.Migration) *RunMigrations {
	uc.migrations = list
	return uc
}

// Run executes the use case
func (uc *RunMigrations) Run(ctx context.Context, params RunMigrationsParams) (*RunMigrationsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("select a network with --network: %w", domain.ErrNetworkNotConfigured)
	}

	selected, err := migrations.Select(uc.migrations, params.From, params.To)
	if err != nil {
		return nil, err
	}

	result := &RunMigrationsResult{
		Network:   network,
		Namespace: uc.config.Namespace,
		DryRun:    params.DryRun,
	}

	if params.DryRun {
		plan, err := uc.plan(ctx, selected)
		result.Plan = plan
		return result, err
	}

	if !network.HasSender() {
		return nil, fmt.Errorf("network %s has no private_key: %w", network.Name, domain.ErrNoSender)
	}

	if err := uc.confirm(ctx, network, selected, params.Yes); err != nil {
		return nil, err
	}

	for i, m := range selected {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageResolving,
			Current: i + 1,
			Total:   len(selected),
			Message: fmt.Sprintf("Running migration %s", m.FullName()),
		})

		record, deployments, runErr := uc.runOne(ctx, m, network)
		result.Records = append(result.Records, record)
		result.Deployments = append(result.Deployments, deployments...)

		if err := uc.history.RecordMigration(ctx, record); err != nil {
			uc.log.Warn("failed to record migration", "migration", m.FullName(), "error", err)
		}

		if runErr != nil {
			uc.progress.Error(fmt.Sprintf("Migration %s failed: %v", m.FullName(), runErr))
			return result, fmt.Errorf("migration %s: %w", m.FullName(), runErr)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Message: "Migrations complete"})
	return result, nil
}

func (uc *RunMigrations) runOne(ctx context.Context, m migrations.Migration, network *config.Network) (*models.MigrationRecord, []*models.Deployment, error) {
	session := NewSession(SessionParams{
		Namespace: uc.config.Namespace,
		Network:   network,
		Migration: m.FullName(),
		Artifacts: uc.artifacts,
		Deployer:  uc.deployer,
		Repo:      uc.repo,
		Progress:  uc.progress,
		Log:       uc.log,
	})

	record := &models.MigrationRecord{
		MigrationID: m.ID,
		Name:        m.FullName(),
		Namespace:   uc.config.Namespace,
		Network:     network.Name,
		ChainID:     network.ChainID,
		StartedAt:   time.Now().UTC(),
	}

	uc.log.Info("running migration", "migration", m.FullName(), "network", network.Name)
	err := m.Run(ctx, session)

	deployments := session.Deployments()
	record.FinishedAt = time.Now().UTC()
	record.DeploymentIDs = lo.Map(deployments, func(d *models.Deployment, _ int) string { return d.ID })
	record.Status = models.MigrationStatusSucceeded
	if err != nil {
		record.Status = models.MigrationStatusFailed
		record.Error = err.Error()
	}

	return record, deployments, err
}

func (uc *RunMigrations) confirm(ctx context.Context, network *config.Network, selected []migrations.Migration, yes bool) error {
	if !network.Confirm || yes {
		return nil
	}
	if uc.config.NonInteractive {
		return fmt.Errorf("network %s requires confirmation, pass --yes to broadcast non-interactively", network.Name)
	}

	names := lo.Map(selected, func(m migrations.Migration, _ int) string { return m.FullName() })
	ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Broadcast %v to %s (chain %d)", names, network.Name, network.ChainID))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

// plan runs each migration against a deployer that only resolves and validates
func (uc *RunMigrations) plan(ctx context.Context, selected []migrations.Migration) ([]PlannedDeployment, error) {
	p := &planner{artifacts: uc.artifacts, deployed: make(map[string]*models.Deployment)}
	for _, m := range selected {
		p.migration = m.FullName()
		if err := m.Run(ctx, p); err != nil {
			return p.steps, fmt.Errorf("migration %s: %w", m.FullName(), err)
		}
	}
	return p.steps, nil
}

// planner is the Deployer used by dry runs
type planner struct {
	artifacts ArtifactRepository
	migration string
	steps     []PlannedDeployment
	deployed  map[string]*models.Deployment
}

func (p *planner) Deploy(ctx context.Context, name string, args ...any) (*models.Deployment, error) {
	artifact, err := p.artifacts.GetArtifact(ctx, name)
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
	if _, err := artifact.ABI.Pack("", args...); err != nil {
		return nil, &domain.DeploymentErr{Contract: name, Err: fmt.Errorf("encode constructor arguments: %w", err)}
	}

	p.steps = append(p.steps, PlannedDeployment{
		Migration:   p.migration,
		Contract:    name,
		Constructor: artifact.ConstructorSignature(),
		Args:        args,
	})
	dep := &models.Deployment{ContractName: name, Migration: p.migration}
	p.deployed[name] = dep
	return dep, nil
}

func (p *planner) Deployed(_ context.Context, name string) (*models.Deployment, error) {
	if dep, ok := p.deployed[name]; ok {
		return dep, nil
	}
	return nil, fmt.Errorf("%s is not deployed earlier in this plan: %w", name, domain.ErrNotDeployed)
}
