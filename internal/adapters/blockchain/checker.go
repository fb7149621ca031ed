package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/scubr/scubr-migrate/internal/usecase"
)

// ChainIDChecker asks an RPC endpoint for its chain ID
type ChainIDChecker struct {
	dial    DialFunc
	timeout time.Duration
}

// NewChainIDChecker creates a checker that dials with ethclient
func NewChainIDChecker() *ChainIDChecker {
	return &ChainIDChecker{dial: DialEthClient, timeout: 5 * time.Second}
}

// FetchChainID dials the endpoint, reads eth_chainId and disconnects
func (c *ChainIDChecker) FetchChainID(ctx context.Context, rpcURL string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	backend, err := c.dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	if closer, ok := backend.(interface{ Close() }); ok {
		defer closer.Close()
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainIDFetcher = (*ChainIDChecker)(nil)
