package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// Backend is the subset of an ethclient a deployment needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// DialEthClient is the default DialFunc
func DialEthClient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	return client, nil
}

// Deployer sends contract creation transactions and waits for them to be mined
type Deployer struct {
	dial DialFunc
	log  *slog.Logger

	mu       sync.Mutex
	backends map[string]Backend
}

var _ usecase.ContractDeployer = (*Deployer)(nil)

// NewDeployer creates a deployer that dials networks with ethclient on first use
func NewDeployer(log *slog.Logger) *Deployer {
	return NewDeployerWithDialer(DialEthClient, log)
}

// NewDeployerWithDialer creates a deployer with a custom backend factory
func NewDeployerWithDialer(dial DialFunc, log *slog.Logger) *Deployer {
	if log == nil {
		log = slog.Default()
	}
	return &Deployer{
		dial:     dial,
		log:      log.With("component", "Deployer"),
		backends: make(map[string]Backend),
	}
}

// Deploy signs and sends the creation transaction, then blocks until code exists at the new address
func (d *Deployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	if req.Network == nil {
		return nil, domain.ErrNetworkNotConfigured
	}
	if req.Artifact == nil || !req.Artifact.IsDeployable() {
		return nil, fmt.Errorf("%w: no creation bytecode", domain.ErrInvalidArtifact)
	}

	key, err := ParsePrivateKey(req.Network.PrivateKey)
	if err != nil {
		return nil, err
	}

	backend, err := d.backend(ctx, req.Network.RPCURL)
	if err != nil {
		return nil, err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if req.Network.ChainID != 0 && chainID.Uint64() != req.Network.ChainID {
		return nil, fmt.Errorf("%w: network %s expects %d, node reports %d",
			domain.ErrChainIDMismatch, req.Network.Name, req.Network.ChainID, chainID.Uint64())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	packed, err := req.Artifact.ABI.Pack("", req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	address, tx, _, err := bind.DeployContract(opts, req.Artifact.ABI, req.Artifact.Bytecode, backend, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send creation transaction: %w", err)
	}
	d.log.Debug("creation transaction sent",
		"contract", req.Artifact.Name,
		"tx", tx.Hash().Hex(),
		"address", address.Hex(),
		"from", opts.From.Hex())

	deployed, err := bind.WaitDeployed(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}

	receipt, err := backend.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	return &usecase.DeployReceipt{
		Address:         deployed,
		TransactionHash: tx.Hash(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		From:            opts.From,
		ChainID:         chainID.Uint64(),
		ConstructorArgs: packed,
	}, nil
}

// Close releases every dialed backend
func (d *Deployer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for url, b := range d.backends {
		if c, ok := b.(interface{ Close() }); ok {
			c.Close()
		}
		delete(d.backends, url)
	}
}

func (d *Deployer) backend(ctx context.Context, rpcURL string) (Backend, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("%w: empty RPC URL", domain.ErrNetworkNotConfigured)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if b, ok := d.backends[rpcURL]; ok {
		return b, nil
	}
	b, err := d.dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	d.backends[rpcURL] = b
	return b, nil
}

// ParsePrivateKey decodes a hex private key with or without the 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, domain.ErrNoSender
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}
