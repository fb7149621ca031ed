package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scubr/scubr-migrate/internal/domain/models"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// Render renders detailed deployment information
func (r *DeploymentRenderer) Render(deployment *models.Deployment) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", deployment.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(deployment.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", deployment.Address.Hex())
	fmt.Fprintf(r.out, "  Namespace: %s\n", deployment.Namespace)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", deployment.Network, deployment.ChainID)
	if deployment.Migration != "" {
		fmt.Fprintf(r.out, "  Migration: %s\n", deployment.Migration)
	}

	fmt.Fprintln(r.out, "\nTransaction Information:")
	fmt.Fprintf(r.out, "  Hash: %s\n", deployment.TransactionHash.Hex())
	fmt.Fprintf(r.out, "  Sender: %s\n", deployment.Deployer.Hex())
	fmt.Fprintf(r.out, "  Block: %d\n", deployment.BlockNumber)
	fmt.Fprintf(r.out, "  Gas Used: %d\n", deployment.GasUsed)
	if deployment.ConstructorArgs != "" {
		fmt.Fprintf(r.out, "  Constructor Args: %s\n", deployment.ConstructorArgs)
	}

	if deployment.ArtifactPath != "" {
		fmt.Fprintln(r.out, "\nArtifact Information:")
		fmt.Fprintf(r.out, "  Path: %s\n", deployment.ArtifactPath)
	}

	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Created: %s\n", deployment.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
