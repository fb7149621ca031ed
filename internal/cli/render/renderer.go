package render

import "github.com/scubr/scubr-migrate/internal/usecase"

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*usecase.DeploymentListResult]  = (*DeploymentsRenderer)(nil)
	_ Renderer[*usecase.RunMigrationsResult]   = (*MigrateRenderer)(nil)
	_ Renderer[*usecase.MigrationStatusResult] = (*StatusRenderer)(nil)
	_ Renderer[*usecase.ListArtifactsResult]   = (*ArtifactsRenderer)(nil)
	_ Renderer[*usecase.ListNetworksResult]    = (*NetworksRenderer)(nil)
	_ Renderer[*usecase.ManageDevNodeResult]   = (*DevNodeRenderer)(nil)
)
