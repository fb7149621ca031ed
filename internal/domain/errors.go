package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrArtifactNotFound is returned when no compiled artifact matches a contract name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidArtifact is returned when an artifact file cannot be used for deployment
	ErrInvalidArtifact = errors.New("invalid artifact")

	// ErrUnlinkedLibrary is returned when creation bytecode still contains library placeholders
	ErrUnlinkedLibrary = errors.New("bytecode contains unlinked libraries")

	// ErrDeploymentFailed is the single failure class of a deployment action
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrNotDeployed is returned when a contract has no deployed instance on the active network
	ErrNotDeployed = errors.New("contract not deployed")

	// ErrNetworkNotConfigured is returned when an operation needs a network and none is selected
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrNoSender is returned when the selected network has no private key to sign with
	ErrNoSender = errors.New("no sender configured")

	// ErrChainIDMismatch is returned when the node reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrAborted is returned when the user declines to broadcast
	ErrAborted = errors.New("aborted by user")
)

// ArtifactNotFoundErr carries the missing name and close matches
type ArtifactNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ArtifactNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("artifact %q not found", e.Name)
	}
	return fmt.Sprintf("artifact %q not found, did you mean: %s?", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ArtifactNotFoundErr) Unwrap() error {
	return ErrArtifactNotFound
}

// DeploymentErr wraps the cause of a failed deployment action
type DeploymentErr struct {
	Contract string
	Err      error
}

func (e *DeploymentErr) Error() string {
	return fmt.Sprintf("deploy %s: %v", e.Contract, e.Err)
}

// Is makes every DeploymentErr match ErrDeploymentFailed
func (e *DeploymentErr) Is(target error) bool {
	return target == ErrDeploymentFailed
}

func (e *DeploymentErr) Unwrap() error {
	return e.Err
}
