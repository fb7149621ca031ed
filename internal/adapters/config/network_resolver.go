package config

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/config"
	domainconfig "github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// NetworkResolverAdapter resolves networks declared in scubr.toml, asking the node
// for its chain ID when the file leaves chain_id out
type NetworkResolverAdapter struct {
	project *domainconfig.ProjectFile
	fetcher usecase.ChainIDFetcher

	mu    sync.Mutex
	cache map[string]uint64 // rpcURL -> chainID
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig, fetcher usecase.ChainIDFetcher) *NetworkResolverAdapter {
	project := cfg.Project
	if project == nil {
		project = &domainconfig.ProjectFile{}
	}
	return &NetworkResolverAdapter{
		project: project,
		fetcher: fetcher,
		cache:   make(map[string]uint64),
	}
}

// GetNetworks returns all configured network names, sorted
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(a.project.Networks)
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	network, err := config.ResolveNetwork(a.project, networkName)
	if err != nil {
		return nil, err
	}
	if network.ChainID != 0 {
		return network, nil
	}

	a.mu.Lock()
	chainID, cached := a.cache[network.RPCURL]
	a.mu.Unlock()

	if !cached {
		id, err := a.fetcher.FetchChainID(ctx, network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
		chainID = id.Uint64()

		a.mu.Lock()
		a.cache[network.RPCURL] = chainID
		a.mu.Unlock()
	}

	network.ChainID = chainID
	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
