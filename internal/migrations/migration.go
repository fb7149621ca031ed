// Package migrations holds the numbered deployment steps run by the migrate command.
package migrations

import (
	"context"
	"fmt"
	"sort"

	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// Deployer is the handle a migration uses to put contracts on chain.
type Deployer interface {
	// Deploy sends the creation transaction for the named artifact and waits until it is mined.
	Deploy(ctx context.Context, artifact string, args ...any) (*models.Deployment, error)
	// Deployed returns the deployed instance of the named artifact on the active network.
	Deployed(ctx context.Context, artifact string) (*models.Deployment, error)
}

// Migration is one numbered step
type Migration struct {
	ID   int
	Name string
	Run  func(ctx context.Context, d Deployer) error
}

// FullName returns the "2_deploy_contracts" form
func (m Migration) FullName() string {
	return fmt.Sprintf("%d_%s", m.ID, m.Name)
}

var registry = []Migration{
	{ID: 2, Name: "deploy_contracts", Run: DeployContracts},
}

// All returns the registered migrations ordered by ID
func All() []Migration {
	out := make([]Migration, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Select returns the migrations with from <= ID <= to. Zero means unbounded.
func Select(list []Migration, from, to int) ([]Migration, error) {
	if from > 0 && to > 0 && from > to {
		return nil, fmt.Errorf("invalid migration range: from %d is after to %d", from, to)
	}

	var selected []Migration
	for _, m := range list {
		if from > 0 && m.ID < from {
			continue
		}
		if to > 0 && m.ID > to {
			continue
		}
		selected = append(selected, m)
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no migrations in range [%d, %d]", from, to)
	}
	return selected, nil
}
