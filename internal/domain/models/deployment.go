package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment is a deployed contract instance as recorded in the registry
type Deployment struct {
	// Core identification
	ID           string         `json:"id" yaml:"id"` // e.g., "default/1337/ScubrVideoToken#2"
	Namespace    string         `json:"namespace" yaml:"namespace"`
	Network      string         `json:"network" yaml:"network"`
	ChainID      uint64         `json:"chainId" yaml:"chainId"`
	ContractName string         `json:"contractName" yaml:"contractName"`
	Sequence     int            `json:"sequence" yaml:"sequence"`
	Address      common.Address `json:"address" yaml:"address"`

	// Transaction details
	TransactionHash common.Hash    `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber" yaml:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed" yaml:"gasUsed"`
	Deployer        common.Address `json:"deployer" yaml:"deployer"`

	// ConstructorArgs is the hex encoded ABI payload appended to the creation code
	ConstructorArgs string `json:"constructorArgs,omitempty" yaml:"constructorArgs,omitempty"`

	ArtifactPath string    `json:"artifactPath" yaml:"artifactPath"`
	Migration    string    `json:"migration,omitempty" yaml:"migration,omitempty"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewDeploymentID builds the registry key for a deployment
func NewDeploymentID(namespace string, chainID uint64, contract string, seq int) string {
	return fmt.Sprintf("%s/%d/%s#%d", namespace, chainID, contract, seq)
}

