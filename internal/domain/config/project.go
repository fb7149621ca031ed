package config

// ProjectFileName is the project configuration file looked up from the working directory
const ProjectFileName = "scubr.toml"

// DefaultArtifactsDir is where Truffle writes compiled contracts
const DefaultArtifactsDir = "build/contracts"

// ProjectFile is the decoded scubr.toml
type ProjectFile struct {
	ArtifactsDir string                   `toml:"artifacts_dir"`
	Namespace    string                   `toml:"namespace"`
	Networks     map[string]NetworkConfig `toml:"networks"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	RPCURL     string `toml:"rpc_url"`
	ChainID    uint64 `toml:"chain_id"`
	PrivateKey string `toml:"private_key"`
	Confirm    bool   `toml:"confirm"`
}
