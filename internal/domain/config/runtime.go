package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string

	// Context settings
	Namespace string
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Project is the parsed scubr.toml
	Project *ProjectFile
}

// Network is a resolved deployment target
type Network struct {
	Name       string `json:"name"`
	RPCURL     string `json:"rpcUrl"`
	ChainID    uint64 `json:"chainId"`
	PrivateKey string `json:"-"`
	// Confirm asks before broadcasting to this network
	Confirm bool `json:"confirm"`
}

// HasSender reports whether the network can sign transactions
func (n *Network) HasSender() bool {
	return n != nil && n.PrivateKey != ""
}
