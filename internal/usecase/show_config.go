package usecase

import (
	"context"

	"github.com/scubr/scubr-migrate/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool

	// Effective values after flags, env, config.local.json and scubr.toml
	Namespace string
	Network   string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
	store  LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		config: cfg,
		store:  store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Config:     local,
		ConfigPath: uc.store.Path(),
		Exists:     uc.store.Exists(),
		Namespace:  uc.config.Namespace,
	}
	if uc.config.Network != nil {
		result.Network = uc.config.Network.Name
	}
	return result, nil
}
