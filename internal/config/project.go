package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/scubr/scubr-migrate/internal/domain/config"
)

const (
	// DevelopmentNetwork is added when scubr.toml does not declare it
	DevelopmentNetwork = "development"
	DevelopmentChainID = 31337
	DevelopmentRPCURL  = "http://127.0.0.1:8545"
	// first prefunded anvil account
	developmentPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

// loadEnvFiles loads .env then .env.local without overriding variables already set
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// LoadProjectFile reads scubr.toml from the project root. A missing file yields the defaults.
func LoadProjectFile(projectRoot string) (*config.ProjectFile, error) {
	loadEnvFiles(projectRoot)

	var pf config.ProjectFile
	path := filepath.Join(projectRoot, config.ProjectFileName)
	if _, err := toml.DecodeFile(path, &pf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse %s: %w", config.ProjectFileName, err)
	}

	pf.ArtifactsDir = os.ExpandEnv(pf.ArtifactsDir)
	if pf.ArtifactsDir == "" {
		pf.ArtifactsDir = config.DefaultArtifactsDir
	}
	pf.Namespace = os.ExpandEnv(pf.Namespace)

	networks := make(map[string]config.NetworkConfig, len(pf.Networks)+1)
	for name, n := range pf.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		n.PrivateKey = os.ExpandEnv(n.PrivateKey)
		networks[name] = n
	}
	if _, ok := networks[DevelopmentNetwork]; !ok {
		networks[DevelopmentNetwork] = config.NetworkConfig{
			RPCURL:     DevelopmentRPCURL,
			ChainID:    DevelopmentChainID,
			PrivateKey: developmentPrivateKey,
		}
	}
	pf.Networks = networks

	return &pf, nil
}

// ResolveNetwork builds the runtime network for a name declared in the project file
func ResolveNetwork(pf *config.ProjectFile, name string) (*config.Network, error) {
	n, ok := pf.Networks[name]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", name, config.ProjectFileName)
	}
	if n.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url", name)
	}
	return &config.Network{
		Name:       name,
		RPCURL:     n.RPCURL,
		ChainID:    n.ChainID,
		PrivateKey: n.PrivateKey,
		Confirm:    n.Confirm,
	}, nil
}
