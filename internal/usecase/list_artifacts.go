package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// ListArtifactsParams contains parameters for listing artifacts
type ListArtifactsParams struct {
	// DeployableOnly hides interfaces and abstract contracts
	DeployableOnly bool
}

// ListArtifactsResult contains the resolvable artifacts sorted by name
type ListArtifactsResult struct {
	Artifacts []*models.Artifact
}

// ListArtifacts is a use case for listing compiled contracts
type ListArtifacts struct {
	artifacts ArtifactRepository
}

// NewListArtifacts creates a new ListArtifacts use case
func NewListArtifacts(artifacts ArtifactRepository) *ListArtifacts {
	return &ListArtifacts{artifacts: artifacts}
}

// Run executes the use case
func (uc *ListArtifacts) Run(ctx context.Context, params ListArtifactsParams) (*ListArtifactsResult, error) {
	all, err := uc.artifacts.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	if params.DeployableOnly {
		all = lo.Filter(all, func(a *models.Artifact, _ int) bool { return a.IsDeployable() })
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })

	return &ListArtifactsResult{Artifacts: all}, nil
}
