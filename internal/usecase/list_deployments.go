package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	ContractName string
	// AllNamespaces ignores the configured namespace
	AllNamespaces bool
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total      int
	ByContract map[string]int
	ByChain    map[uint64]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		repo:   repo,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	filter := domain.DeploymentFilter{
		ContractName: params.ContractName,
	}
	if !params.AllNamespaces {
		filter.Namespace = uc.config.Namespace
	}
	if uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
	}

	deployments, err := uc.repo.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts by namespace, chain, contract name, then sequence
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		a, b := deployments[i], deployments[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.ContractName != b.ContractName {
			return a.ContractName < b.ContractName
		}
		return a.Sequence < b.Sequence
	})
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	return DeploymentSummary{
		Total:      len(deployments),
		ByContract: lo.CountValuesBy(deployments, func(d *models.Deployment) string { return d.ContractName }),
		ByChain:    lo.CountValuesBy(deployments, func(d *models.Deployment) uint64 { return d.ChainID }),
	}
}
