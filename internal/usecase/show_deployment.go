package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Ref is either a full deployment ID ("default/1337/ScubrVideoToken#2")
	// or a contract name resolved to its latest instance
	Ref string
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	sink   ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		repo:   repo,
		sink:   sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.Deployment, error) {
	ref := strings.TrimSpace(params.Ref)
	if ref == "" {
		return nil, fmt.Errorf("deployment ID or contract name is required")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: "Loading deployment details",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	if strings.Contains(ref, "/") {
		deployment, err := uc.repo.GetDeployment(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("deployment %s: %w", ref, err)
		}
		return deployment, nil
	}

	if uc.config.Network != nil {
		deployment, err := uc.repo.LatestDeployment(ctx, uc.config.Namespace, uc.config.Network.ChainID, ref)
		if err != nil {
			return nil, fmt.Errorf("%s in namespace %s on %s: %w", ref, uc.config.Namespace, uc.config.Network.Name, err)
		}
		return deployment, nil
	}

	candidates, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Namespace:    uc.config.Namespace,
		ContractName: ref,
	})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s in namespace %s: %w", ref, uc.config.Namespace, domain.ErrNotFound)
	}

	chains := lo.Uniq(lo.Map(candidates, func(d *models.Deployment, _ int) uint64 { return d.ChainID }))
	if len(chains) > 1 {
		return nil, fmt.Errorf("%s is deployed on chains %v, select one with --network", ref, chains)
	}

	return lo.MaxBy(candidates, func(a, b *models.Deployment) bool { return a.Sequence > b.Sequence }), nil
}
