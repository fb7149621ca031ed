package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

const (
	DataDir         = ".scubr"
	DeploymentsFile = "deployments.json"
	MigrationsFile  = "migrations.json"
)

// FileRepository stores deployments and migration history in json files
type FileRepository struct {
	dir         string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
	migrations  []*models.MigrationRecord
}

var (
	_ usecase.DeploymentRepository = (*FileRepository)(nil)
	_ usecase.MigrationLog         = (*FileRepository)(nil)
)

// NewFileRepositoryFromConfig opens the registry in the configured data directory
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = filepath.Join(cfg.ProjectRoot, DataDir)
	}
	return NewFileRepository(dir)
}

// NewFileRepository opens the registry stored in dir, creating it if needed
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	r := &FileRepository{
		dir:         dir,
		deployments: make(map[string]*models.Deployment),
	}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return r, nil
}

func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadFile(DeploymentsFile, &r.deployments); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load deployments: %w", err)
	}
	if err := r.loadFile(MigrationsFile, &r.migrations); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	// "null" in an empty file leaves a nil map
	if r.deployments == nil {
		r.deployments = make(map[string]*models.Deployment)
	}
	return nil
}

func (r *FileRepository) loadFile(filename string, v any) error {
	data, err := os.ReadFile(filepath.Join(r.dir, filename))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// saveFile writes to a temp file and renames it over the target
func (r *FileRepository) saveFile(filename string, v any) error {
	path := filepath.Join(r.dir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// SaveDeployment saves or updates a deployment
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.ID == "" {
		return fmt.Errorf("deployment has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *deployment
	previous, existed := r.deployments[clone.ID]
	r.deployments[clone.ID] = &clone

	if err := r.saveFile(DeploymentsFile, r.deployments); err != nil {
		if existed {
			r.deployments[clone.ID] = previous
		} else {
			delete(r.deployments, clone.ID)
		}
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// GetDeployment retrieves a deployment by ID
func (r *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dep, ok := r.deployments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *dep
	return &clone, nil
}

// LatestDeployment returns the highest sequence deployed for a contract
func (r *FileRepository) LatestDeployment(ctx context.Context, namespace string, chainID uint64, contract string) (*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(domain.DeploymentFilter{Namespace: namespace, ChainID: chainID, ContractName: contract})
	if len(matches) == 0 {
		return nil, domain.ErrNotFound
	}

	latest := lo.MaxBy(matches, func(a, b *models.Deployment) bool {
		return a.Sequence > b.Sequence
	})
	clone := *latest
	return &clone, nil
}

// ListDeployments retrieves deployments matching the filter
func (r *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.matching(filter), func(dep *models.Deployment, _ int) *models.Deployment {
		clone := *dep
		return &clone
	}), nil
}

// NextSequence returns the sequence number the next deployment of a contract should take
func (r *FileRepository) NextSequence(ctx context.Context, namespace string, chainID uint64, contract string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(domain.DeploymentFilter{Namespace: namespace, ChainID: chainID, ContractName: contract})
	if len(matches) == 0 {
		return 1, nil
	}
	return lo.Max(lo.Map(matches, func(dep *models.Deployment, _ int) int { return dep.Sequence })) + 1, nil
}

// RecordMigration appends a migration run to the history file
func (r *FileRepository) RecordMigration(ctx context.Context, record *models.MigrationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *record
	clone.DeploymentIDs = append([]string(nil), record.DeploymentIDs...)
	r.migrations = append(r.migrations, &clone)

	if err := r.saveFile(MigrationsFile, r.migrations); err != nil {
		r.migrations = r.migrations[:len(r.migrations)-1]
		return fmt.Errorf("failed to save migrations: %w", err)
	}
	return nil
}

// ListMigrations returns the migration history in the order it was recorded
func (r *FileRepository) ListMigrations(ctx context.Context) ([]*models.MigrationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.migrations, func(rec *models.MigrationRecord, _ int) *models.MigrationRecord {
		clone := *rec
		return &clone
	}), nil
}

func (r *FileRepository) matching(filter domain.DeploymentFilter) []*models.Deployment {
	return lo.Filter(lo.Values(r.deployments), func(dep *models.Deployment, _ int) bool {
		return filter.Matches(dep.Namespace, dep.ChainID, dep.ContractName)
	})
}
