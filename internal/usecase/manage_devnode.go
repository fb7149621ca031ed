package usecase

import (
	"context"
	"fmt"

	"github.com/scubr/scubr-migrate/internal/domain"
)

// ManageDevNode handles the local development chain
type ManageDevNode struct {
	node     DevNode
	progress ProgressSink
}

// NewManageDevNode creates a new dev node management use case
func NewManageDevNode(node DevNode, progress ProgressSink) *ManageDevNode {
	return &ManageDevNode{
		node:     node,
		progress: progress,
	}
}

// DevNodeOperation is one of start, stop, restart, status
type DevNodeOperation string

const (
	DevNodeStart   DevNodeOperation = "start"
	DevNodeStop    DevNodeOperation = "stop"
	DevNodeRestart DevNodeOperation = "restart"
	DevNodeStatus  DevNodeOperation = "status"
)

// ManageDevNodeParams contains parameters for dev node operations
type ManageDevNodeParams struct {
	Operation DevNodeOperation
	Name      string
	Port      string
	ChainID   string
}

// ManageDevNodeResult contains the result of dev node operations
type ManageDevNodeResult struct {
	Operation DevNodeOperation
	Instance  *domain.DevNodeInstance
	Status    *domain.DevNodeStatus
	Message   string
}

// Execute performs the dev node operation
func (m *ManageDevNode) Execute(ctx context.Context, params ManageDevNodeParams) (*ManageDevNodeResult, error) {
	instance := domain.NewDevNodeInstance(params.Name, params.Port, params.ChainID)

	switch params.Operation {
	case DevNodeStart:
		return m.start(ctx, instance)
	case DevNodeStop:
		return m.stop(ctx, instance)
	case DevNodeRestart:
		if _, err := m.stop(ctx, instance); err != nil {
			return nil, err
		}
		res, err := m.start(ctx, instance)
		if err != nil {
			return nil, err
		}
		res.Operation = DevNodeRestart
		return res, nil
	case DevNodeStatus:
		status, err := m.node.Status(ctx, instance)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return &ManageDevNodeResult{Operation: DevNodeStatus, Instance: instance, Status: status}, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

func (m *ManageDevNode) start(ctx context.Context, instance *domain.DevNodeInstance) (*ManageDevNodeResult, error) {
	m.progress.Info(fmt.Sprintf("Starting local node '%s' on port %s...", instance.Name, instance.Port))

	status, err := m.node.Status(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("node '%s' is already running (PID %d)", instance.Name, status.PID)
	}

	if err := m.node.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start node: %w", err)
	}

	status, err = m.node.Status(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: DevNodeStart,
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Node '%s' started with PID %d at %s", instance.Name, status.PID, instance.RPCURL()),
	}, nil
}

func (m *ManageDevNode) stop(ctx context.Context, instance *domain.DevNodeInstance) (*ManageDevNodeResult, error) {
	status, err := m.node.Status(ctx, instance)
	if err != nil || !status.Running {
		return &ManageDevNodeResult{
			Operation: DevNodeStop,
			Instance:  instance,
			Message:   fmt.Sprintf("Node '%s' is not running", instance.Name),
		}, nil
	}

	m.progress.Info(fmt.Sprintf("Stopping node '%s'...", instance.Name))
	if err := m.node.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop node: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: DevNodeStop,
		Instance:  instance,
		Message:   fmt.Sprintf("Node '%s' stopped", instance.Name),
	}, nil
}
