package anvil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// Manager runs anvil as a detached background process tracked by a pid file
type Manager struct {
	binary       string
	readyTimeout time.Duration
	stopTimeout  time.Duration
	log          *slog.Logger
}

var _ usecase.DevNode = (*Manager)(nil)

// NewManager creates a new anvil manager
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		binary:       "anvil",
		readyTimeout: 10 * time.Second,
		stopTimeout:  5 * time.Second,
		log:          log.With("component", "Anvil"),
	}
}

func buildAnvilArgs(instance *domain.DevNodeInstance) []string {
	args := []string{"--port", instance.Port, "--host", "0.0.0.0"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	return args
}

// Start launches the node and waits until it answers eth_chainId
func (m *Manager) Start(ctx context.Context, instance *domain.DevNodeInstance) error {
	if m.isRunning(instance) {
		return fmt.Errorf("node '%s' is already running (PID file exists at %s)", instance.Name, instance.PidFile)
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// own process group so the node outlives this command
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", m.binary, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		m.log.Debug("failed to release process", "pid", pid, "error", err)
	}

	if err := writePidFile(instance.PidFile, pid); err != nil {
		_ = killPid(pid)
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	m.log.Debug("node process started", "name", instance.Name, "pid", pid, "log", instance.LogFile)

	if err := m.waitReady(ctx, instance); err != nil {
		_ = killPid(pid)
		_ = os.Remove(instance.PidFile)
		return fmt.Errorf("node did not become ready, see %s: %w", instance.LogFile, err)
	}
	return nil
}

// Stop sends SIGTERM and falls back to SIGKILL after the stop timeout
func (m *Manager) Stop(ctx context.Context, instance *domain.DevNodeInstance) error {
	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		if err := process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	deadline := time.Now().Add(m.stopTimeout)
	for alive(process) {
		if time.Now().After(deadline) {
			m.log.Warn("node ignored SIGTERM, killing", "pid", pid)
			_ = process.Kill()
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Status reports the process state and, when running, RPC health and chain ID
func (m *Manager) Status(ctx context.Context, instance *domain.DevNodeInstance) (*domain.DevNodeStatus, error) {
	status := &domain.DevNodeStatus{
		RPCURL:  instance.RPCURL(),
		LogFile: instance.LogFile,
	}

	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		if !os.IsNotExist(err) {
			status.Error = err.Error()
		}
		return status, nil
	}
	status.PID = pid

	process, err := os.FindProcess(pid)
	if err != nil || !alive(process) {
		status.Error = fmt.Sprintf("stale PID file %s", instance.PidFile)
		return status, nil
	}
	status.Running = true

	chainID, err := fetchChainID(ctx, instance.RPCURL())
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	return status, nil
}

func (m *Manager) isRunning(instance *domain.DevNodeInstance) bool {
	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return alive(process)
}

func (m *Manager) waitReady(ctx context.Context, instance *domain.DevNodeInstance) error {
	ctx, cancel := context.WithTimeout(ctx, m.readyTimeout)
	defer cancel()

	for {
		_, err := fetchChainID(ctx, instance.RPCURL())
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("RPC not responding: %w", err)
	}
	return id.Uint64(), nil
}

func alive(process *os.Process) bool {
	return process.Signal(syscall.Signal(0)) == nil
}

func killPid(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}
