package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/scubr/scubr-migrate/internal/adapters/repository/deployments"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engagementArtifact = `{
  "contractName": "ScubrEngagementToken",
  "sourcePath": "contracts/ScubrEngagementToken.sol",
  "abi": [{"type":"constructor","inputs":[],"stateMutability":"nonpayable"}],
  "bytecode": "0x6001600c60003960016000f300"
}`

const videoArtifact = `{
  "contractName": "ScubrVideoToken",
  "sourcePath": "contracts/ScubrVideoToken.sol",
  "abi": [{"type":"constructor","inputs":[{"name":"token","type":"address","internalType":"address"}],"stateMutability":"nonpayable"}],
  "bytecode": "0x6001600c60003960016000f300"
}`

var (
	engagementAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	videoAddr      = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
)

func init() {
	color.NoColor = true
}

// newProject creates a Truffle style project and makes it the working directory
func newProject(t *testing.T, scubrToml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scubr.toml"), []byte(scubrToml), 0644))

	artifacts := filepath.Join(dir, "build", "contracts")
	require.NoError(t, os.MkdirAll(artifacts, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(artifacts, "ScubrEngagementToken.json"), []byte(engagementArtifact), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(artifacts, "ScubrVideoToken.json"), []byte(videoArtifact), 0644))

	chdir(t, dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--non-interactive"))
	err := root.Execute()
	return out.String(), err
}

func seedDeployments(t *testing.T, projectRoot string) {
	t.Helper()
	repo, err := deployments.NewFileRepository(filepath.Join(projectRoot, ".scubr"))
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		name string
		addr common.Address
	}{
		{"ScubrEngagementToken", engagementAddr},
		{"ScubrVideoToken", videoAddr},
	}
	for i, s := range seed {
		require.NoError(t, repo.SaveDeployment(context.Background(), &models.Deployment{
			ID:           models.NewDeploymentID("default", 31337, s.name, 1),
			Namespace:    "default",
			Network:      "development",
			ChainID:      31337,
			ContractName: s.name,
			Sequence:     1,
			Address:      s.addr,
			BlockNumber:  uint64(i + 1),
			Migration:    "2_deploy_contracts",
			CreatedAt:    created,
		}))
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scubr version dev")
}

func TestOutsideProject(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "deployments")
	if err != nil {
		assert.Contains(t, err.Error(), "not in a contracts project")
	}
}

func TestArtifactsCmd(t *testing.T) {
	newProject(t, "")

	out, err := execute(t, "artifacts")
	require.NoError(t, err)
	assert.Contains(t, out, "ScubrEngagementToken")
	assert.Contains(t, out, "constructor(address token)")
	assert.Contains(t, out, "Total artifacts: 2")
}

func TestNetworksCmd(t *testing.T) {
	newProject(t, `
[networks.local]
rpc_url = "http://127.0.0.1:7545"
chain_id = 5777
`)

	out, err := execute(t, "networks", "-n", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "development")
	assert.Contains(t, out, "31337")
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "5777")
}

func TestMigrateCmd(t *testing.T) {
	t.Run("dry run on the development network", func(t *testing.T) {
		newProject(t, "")

		out, err := execute(t, "migrate", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "Dry run on development (chain 31337), namespace default")
		assert.Contains(t, out, "ScubrEngagementToken")
		assert.Contains(t, out, "ScubrVideoToken")
		assert.Contains(t, out, "2 contract(s) would be deployed")
	})

	t.Run("unknown network", func(t *testing.T) {
		newProject(t, "")

		_, err := execute(t, "migrate", "-n", "mainnet", "--dry-run")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network 'mainnet' not found")
	})

	t.Run("several networks need --network when non-interactive", func(t *testing.T) {
		newProject(t, `
[networks.sepolia]
rpc_url = "https://sepolia.example"
chain_id = 11155111
`)

		_, err := execute(t, "migrate", "--dry-run")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "select a network with --network")
	})

	t.Run("invalid range", func(t *testing.T) {
		newProject(t, "")

		_, err := execute(t, "migrate", "--dry-run", "--from", "3", "--to", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid migration range")
	})
}

func TestStatusCmd(t *testing.T) {
	newProject(t, "")

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "2_deploy_contracts")
	assert.Contains(t, out, "Pending")
}

func TestDeploymentsCmd(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		dir := newProject(t, "")
		seedDeployments(t, dir)

		out, err := execute(t, "deployments", "--format", "json")
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "default/31337/ScubrEngagementToken#1", decoded[0]["id"])
	})

	t.Run("contract filter", func(t *testing.T) {
		dir := newProject(t, "")
		seedDeployments(t, dir)

		out, err := execute(t, "list", "--contract", "ScubrVideoToken")
		require.NoError(t, err)
		assert.Contains(t, out, videoAddr.Hex())
		assert.NotContains(t, out, engagementAddr.Hex())
		assert.Contains(t, out, "Total deployments: 1")
	})

	t.Run("other namespace is empty", func(t *testing.T) {
		dir := newProject(t, "")
		seedDeployments(t, dir)

		out, err := execute(t, "deployments", "-s", "staging")
		require.NoError(t, err)
		assert.Contains(t, out, "No deployments found")
	})

	t.Run("invalid format", func(t *testing.T) {
		newProject(t, "")

		_, err := execute(t, "deployments", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestShowCmd(t *testing.T) {
	dir := newProject(t, "")
	seedDeployments(t, dir)

	out, err := execute(t, "show", "ScubrVideoToken")
	require.NoError(t, err)
	assert.Contains(t, out, "Deployment: default/31337/ScubrVideoToken#1")
	assert.Contains(t, out, videoAddr.Hex())

	out, err = execute(t, "show", "default/31337/ScubrEngagementToken#1", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"contractName": "ScubrEngagementToken"`)

	_, err = execute(t, "show", "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConfigCmd(t *testing.T) {
	newProject(t, `
[networks.sepolia]
rpc_url = "https://sepolia.example"
chain_id = 11155111
`)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "No .scubr/config.local.json file found")

	out, err = execute(t, "config", "set", "ns", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, "Set namespace to: staging")

	_, err = execute(t, "config", "set", "network", "mainnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network 'mainnet' not found")

	_, err = execute(t, "config", "set", "network", "sepolia")
	require.NoError(t, err)

	out, err = execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Namespace: staging")
	assert.Contains(t, out, "Network:   sepolia")

	// the stored network is picked up without --network
	out, err = execute(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run on sepolia (chain 11155111), namespace staging")

	out, err = execute(t, "config", "remove", "network")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed network")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
