package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDevNodePort is the port the development chain listens on
const DefaultDevNodePort = "8545"

// DevNodeInstance represents a local anvil node instance
type DevNodeInstance struct {
	Name    string `json:"name"`
	Port    string `json:"port"`
	ChainID string `json:"chainId,omitempty"`
	PidFile string `json:"pidFile"`
	LogFile string `json:"logFile"`
}

// NewDevNodeInstance fills in defaults and places pid/log files in the OS temp dir
func NewDevNodeInstance(name, port, chainID string) *DevNodeInstance {
	if strings.TrimSpace(name) == "" {
		name = "anvil"
	}
	if strings.TrimSpace(port) == "" {
		port = DefaultDevNodePort
	}
	base := os.TempDir()
	return &DevNodeInstance{
		Name:    name,
		Port:    port,
		ChainID: strings.TrimSpace(chainID),
		PidFile: filepath.Join(base, fmt.Sprintf("scubr-%s.pid", name)),
		LogFile: filepath.Join(base, fmt.Sprintf("scubr-%s.log", name)),
	}
}

// RPCURL is the local endpoint of the instance
func (i *DevNodeInstance) RPCURL() string {
	return fmt.Sprintf("http://127.0.0.1:%s", i.Port)
}

// DevNodeStatus represents the status of a dev node instance
type DevNodeStatus struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid,omitempty"`
	RPCURL     string `json:"rpcUrl,omitempty"`
	LogFile    string `json:"logFile"`
	RPCHealthy bool   `json:"rpcHealthy"`
	ChainID    uint64 `json:"chainId,omitempty"`
	Error      string `json:"error,omitempty"`
}
