package usecase

import (
	"context"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/migrations"
)

// MigrationState pairs a registered migration with its latest run on the active network
type MigrationState struct {
	ID      int
	Name    string
	LastRun *models.MigrationRecord
	Runs    int
}

// MigrationStatusResult lists every registered migration
type MigrationStatusResult struct {
	Network    string
	Namespace  string
	Migrations []MigrationState
}

// MigrationStatus reports which migrations have run on the selected network
type MigrationStatus struct {
	config  *config.RuntimeConfig
	history MigrationLog
}

// NewMigrationStatus creates a new MigrationStatus use case
func NewMigrationStatus(cfg *config.RuntimeConfig, history MigrationLog) *MigrationStatus {
	return &MigrationStatus{config: cfg, history: history}
}

// Run executes the use case
func (uc *MigrationStatus) Run(ctx context.Context) (*MigrationStatusResult, error) {
	records, err := uc.history.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationStatusResult{Namespace: uc.config.Namespace}
	records = lo.Filter(records, func(r *models.MigrationRecord, _ int) bool {
		if r.Namespace != uc.config.Namespace {
			return false
		}
		return uc.config.Network == nil || r.ChainID == uc.config.Network.ChainID
	})
	if uc.config.Network != nil {
		result.Network = uc.config.Network.Name
	}

	byID := lo.GroupBy(records, func(r *models.MigrationRecord) int { return r.MigrationID })
	for _, m := range migrations.All() {
		runs := byID[m.ID]
		state := MigrationState{ID: m.ID, Name: m.FullName(), Runs: len(runs)}
		if len(runs) > 0 {
			state.LastRun = lo.MaxBy(runs, func(a, b *models.MigrationRecord) bool {
				return a.StartedAt.After(b.StartedAt)
			})
		}
		result.Migrations = append(result.Migrations, state)
	}
	return result, nil
}
