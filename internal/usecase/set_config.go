package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, networks NetworkResolver) *SetConfig {
	return &SetConfig{
		store:    store,
		networks: networks,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(params.Value)
	if value == "" {
		return nil, fmt.Errorf("value for %s cannot be empty, use 'config remove %s' instead", key, key)
	}

	if key == config.ConfigKeyNetwork {
		available := uc.networks.GetNetworks(ctx)
		if !lo.Contains(available, value) {
			return nil, fmt.Errorf("network '%s' not found in scubr.toml [networks] (available: %s)", value, strings.Join(available, ", "))
		}
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	local.Set(key, value)

	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: local,
		ConfigPath:    uc.store.Path(),
		Key:           key,
		Value:         value,
	}, nil
}

func parseConfigKey(raw string) (config.ConfigKey, error) {
	key, ok := config.ParseConfigKey(raw)
	if ok {
		return key, nil
	}
	valid := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string {
		if k == config.ConfigKeyNamespace {
			return string(k) + " (ns)"
		}
		return string(k)
	})
	return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(valid, ", "))
}
