package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

const (
	engagementABI = `[{"type":"constructor","inputs":[],"stateMutability":"nonpayable"}]`
	videoABI      = `[{"type":"constructor","inputs":[{"name":"token","type":"address","internalType":"address"}],"stateMutability":"nonpayable"}]`
)

func newArtifact(t *testing.T, name, abiJSON string) *models.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)
	return &models.Artifact{
		Name:         name,
		ArtifactPath: "build/contracts/" + name + ".json",
		Format:       models.ArtifactFormatTruffle,
		ABI:          parsed,
		Bytecode:     []byte{0x60, 0x80, 0x60, 0x40},
	}
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artifact), args.Error(1)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployReceipt), args.Error(1)
}

// forArtifact matches a DeployRequest by artifact name
func forArtifact(name string) interface{} {
	return mock.MatchedBy(func(req usecase.DeployRequest) bool {
		return req.Artifact != nil && req.Artifact.Name == name
	})
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// memRepository is an in-memory DeploymentRepository and MigrationLog
type memRepository struct {
	mu          sync.Mutex
	deployments []*models.Deployment
	migrations  []*models.MigrationRecord
	saveErr     error
}

func (r *memRepository) SaveDeployment(ctx context.Context, d *models.Deployment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.deployments = append(r.deployments, d)
	return nil
}

func (r *memRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.deployments {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepository) LatestDeployment(ctx context.Context, namespace string, chainID uint64, contract string) (*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Deployment
	for _, d := range r.deployments {
		if d.Namespace == namespace && d.ChainID == chainID && d.ContractName == contract {
			if latest == nil || d.Sequence > latest.Sequence {
				latest = d
			}
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (r *memRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Deployment
	for _, d := range r.deployments {
		if filter.Matches(d.Namespace, d.ChainID, d.ContractName) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memRepository) NextSequence(ctx context.Context, namespace string, chainID uint64, contract string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.deployments {
		if d.Namespace == namespace && d.ChainID == chainID && d.ContractName == contract {
			n++
		}
	}
	return n + 1, nil
}

func (r *memRepository) RecordMigration(ctx context.Context, rec *models.MigrationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrations = append(r.migrations, rec)
	return nil
}

func (r *memRepository) ListMigrations(ctx context.Context) ([]*models.MigrationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.MigrationRecord(nil), r.migrations...), nil
}

// recordingSink collects progress events
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) { s.errors = append(s.errors, message) }

func (s *recordingSink) stages() []usecase.ExecutionStage {
	out := make([]usecase.ExecutionStage, len(s.events))
	for i, e := range s.events {
		out[i] = e.Stage
	}
	return out
}

func mustContain(t *testing.T, got []usecase.ExecutionStage, want usecase.ExecutionStage) {
	t.Helper()
	for _, s := range got {
		if s == want {
			return
		}
	}
	t.Fatalf("stage %s not reported in %v", want, got)
}
