package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

var (
	engagementAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	videoAddr      = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
)

func sampleDeployments() []*models.Deployment {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*models.Deployment{
		{
			ID:              models.NewDeploymentID("default", 1337, "ScubrEngagementToken", 1),
			Namespace:       "default",
			Network:         "development",
			ChainID:         1337,
			ContractName:    "ScubrEngagementToken",
			Sequence:        1,
			Address:         engagementAddr,
			TransactionHash: common.HexToHash("0x01"),
			BlockNumber:     1,
			GasUsed:         21000,
			Migration:       "2_deploy_contracts",
			CreatedAt:       created,
		},
		{
			ID:              models.NewDeploymentID("default", 1337, "ScubrVideoToken", 1),
			Namespace:       "default",
			Network:         "development",
			ChainID:         1337,
			ContractName:    "ScubrVideoToken",
			Sequence:        1,
			Address:         videoAddr,
			TransactionHash: common.HexToHash("0x02"),
			BlockNumber:     2,
			GasUsed:         42000,
			ConstructorArgs: "0x000000000000000000000000" + engagementAddr.Hex()[2:],
			Migration:       "2_deploy_contracts",
			CreatedAt:       created,
		},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatTable, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateFormat(f))
	}
	err := ValidateFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestDeploymentsRenderer(t *testing.T) {
	result := &usecase.DeploymentListResult{
		Deployments: sampleDeployments(),
		Summary:     usecase.DeploymentSummary{Total: 2},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatTable).Render(result))

		out := buf.String()
		assert.Contains(t, out, "DEFAULT")
		assert.Contains(t, out, "1337")
		assert.Contains(t, out, "ScubrEngagementToken")
		assert.Contains(t, out, videoAddr.Hex())
		assert.Contains(t, out, "Total deployments: 2")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatTable).Render(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatJSON).Render(result))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "default/1337/ScubrEngagementToken#1", decoded[0]["id"])
		assert.Equal(t, "2_deploy_contracts", decoded[1]["migration"])
	})

	t.Run("json empty list is an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatJSON).Render(&usecase.DeploymentListResult{}))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatYAML).Render(result))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "ScubrVideoToken", decoded[1]["contractName"])
		assert.Equal(t, strings.ToLower(videoAddr.Hex()), decoded[1]["address"])
	})
}

func TestDeploymentRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDeploymentRenderer(&buf).Render(sampleDeployments()[1]))

	out := buf.String()
	assert.Contains(t, out, "Deployment: default/1337/ScubrVideoToken#1")
	assert.Contains(t, out, "Network: development (chain 1337)")
	assert.Contains(t, out, "Migration: 2_deploy_contracts")
	assert.Contains(t, out, "Gas Used: 42000")
	assert.Contains(t, out, "Constructor Args: 0x")
	assert.Contains(t, out, "Created: 2026-03-01 12:00:00")
}

func TestMigrateRenderer(t *testing.T) {
	network := &config.Network{Name: "development", ChainID: 1337}

	t.Run("dry run plan", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewMigrateRenderer(&buf).Render(&usecase.RunMigrationsResult{
			Network:   network,
			Namespace: "default",
			DryRun:    true,
			Plan: []usecase.PlannedDeployment{
				{Migration: "2_deploy_contracts", Contract: "ScubrEngagementToken", Constructor: "constructor()"},
				{Migration: "2_deploy_contracts", Contract: "ScubrVideoToken", Constructor: "constructor(address token)", Args: []any{engagementAddr}},
			},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Dry run on development (chain 1337), namespace default")
		assert.Contains(t, out, "constructor(address token)")
		assert.Contains(t, out, engagementAddr.Hex())
		assert.Contains(t, out, "2 contract(s) would be deployed")
	})

	t.Run("executed migrations", func(t *testing.T) {
		started := time.Now()
		var buf bytes.Buffer
		err := NewMigrateRenderer(&buf).Render(&usecase.RunMigrationsResult{
			Network:   network,
			Namespace: "default",
			Records: []*models.MigrationRecord{{
				Name:          "2_deploy_contracts",
				Status:        models.MigrationStatusSucceeded,
				DeploymentIDs: []string{"a", "b"},
				StartedAt:     started,
				FinishedAt:    started.Add(1500 * time.Millisecond),
			}},
			Deployments: sampleDeployments(),
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Succeeded")
		assert.Contains(t, out, "1.5s")
		assert.Contains(t, out, "ScubrVideoToken#1")
		assert.Contains(t, out, engagementAddr.Hex())
	})

	t.Run("failed migration shows its error", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewMigrateRenderer(&buf).Render(&usecase.RunMigrationsResult{
			Network: network,
			Records: []*models.MigrationRecord{{
				Name:   "2_deploy_contracts",
				Status: models.MigrationStatusFailed,
				Error:  "deploy ScubrVideoToken: insufficient funds",
			}},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Failed")
		assert.Contains(t, buf.String(), "Insufficient funds")
	})
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "Succeeded", formatStatus(models.MigrationStatusSucceeded))
	assert.Equal(t, "Failed", formatStatus(models.MigrationStatusFailed))
}

func TestStatusRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewStatusRenderer(&buf).Render(&usecase.MigrationStatusResult{
		Network:   "development",
		Namespace: "default",
		Migrations: []usecase.MigrationState{
			{ID: 1, Name: "1_initial"},
			{ID: 2, Name: "2_deploy_contracts", Runs: 2, LastRun: &models.MigrationRecord{
				Status:    models.MigrationStatusSucceeded,
				StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Migrations (default on development)")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "2026-03-01 12:00:00")
	assert.Contains(t, out, "Succeeded")
}

func TestArtifactsRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewArtifactsRenderer(&buf).Render(&usecase.ListArtifactsResult{
		Artifacts: []*models.Artifact{
			{Name: "ScubrEngagementToken", Format: models.ArtifactFormatTruffle, SourcePath: "contracts/ScubrEngagementToken.sol", Bytecode: []byte{0x60}},
			{Name: "IERC20", Format: models.ArtifactFormatFoundry},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ScubrEngagementToken")
	assert.Contains(t, out, "truffle")
	assert.Contains(t, out, "IERC20 (abstract)")
	assert.Contains(t, out, "constructor()")
	assert.Contains(t, out, "Total artifacts: 2")
}

func TestNetworksRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).Render(&usecase.ListNetworksResult{
		Current: "development",
		Networks: []usecase.NetworkStatus{
			{Name: "development", ChainID: 1337, RPCURL: "http://127.0.0.1:8545", HasSender: true},
			{Name: "sepolia", Error: errors.New("has no rpc_url")},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1337")
	assert.Contains(t, out, "http://127.0.0.1:8545")
	assert.Contains(t, out, "has no rpc_url")
	assert.Contains(t, out, "*")
}

func TestDevNodeRenderer(t *testing.T) {
	instance := domain.NewDevNodeInstance("anvil", "8545", "")

	t.Run("running", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewDevNodeRenderer(&buf).Render(&usecase.ManageDevNodeResult{
			Operation: usecase.DevNodeStatus,
			Instance:  instance,
			Status:    &domain.DevNodeStatus{Running: true, PID: 42, RPCURL: instance.RPCURL(), RPCHealthy: true, ChainID: 31337, LogFile: instance.LogFile},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "running (PID 42)")
		assert.Contains(t, buf.String(), "Chain ID: 31337")
	})

	t.Run("not running", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewDevNodeRenderer(&buf).Render(&usecase.ManageDevNodeResult{
			Operation: usecase.DevNodeStatus,
			Instance:  instance,
			Status:    &domain.DevNodeStatus{Error: "stale PID file"},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "not running")
		assert.Contains(t, buf.String(), "stale PID file")
	})

	t.Run("stop prints message only", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewDevNodeRenderer(&buf).Render(&usecase.ManageDevNodeResult{
			Operation: usecase.DevNodeStop,
			Instance:  instance,
			Message:   "Node 'anvil' stopped",
		})
		require.NoError(t, err)
		assert.Equal(t, "✅ Node 'anvil' stopped\n", buf.String())
	})
}
