package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/scubr/scubr-migrate/internal/domain"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	dir     string
	log     *slog.Logger
	mu      sync.RWMutex
	indexed bool
	byName  map[string][]*models.Artifact
	byKey   map[string]*models.Artifact
}

// NewRepository creates a repository over the configured artifacts directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepositoryAt(cfg.ArtifactsDir, log)
}

// NewRepositoryAt creates a repository over dir
func NewRepositoryAt(dir string, log *slog.Logger) *Repository {
	return &Repository{
		dir:    dir,
		log:    log,
		byName: make(map[string][]*models.Artifact),
		byKey:  make(map[string]*models.Artifact),
	}
}

// GetArtifact resolves a contract by "Name" or "path/to/Source.sol:Name"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(name, ":") {
		if a, ok := r.byKey[name]; ok {
			return a, nil
		}
		return nil, domain.ArtifactNotFoundErr{Name: name, Suggestions: r.suggest(name)}
	}

	matches := r.byName[name]
	switch len(matches) {
	case 0:
		return nil, domain.ArtifactNotFoundErr{Name: name, Suggestions: r.suggest(name)}
	case 1:
		return matches[0], nil
	default:
		keys := lo.Map(matches, func(a *models.Artifact, _ int) string { return a.Key() })
		sort.Strings(keys)
		return nil, fmt.Errorf("multiple artifacts named %s, use one of: %s", name, strings.Join(keys, ", "))
	}
}

// ListArtifacts returns every indexed artifact
func (r *Repository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	if err := r.index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Flatten(lo.Values(r.byName)), nil
}

// index walks the artifacts directory once
func (r *Repository) index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("artifacts directory %s: %w (compile the contracts first)", r.dir, err)
	}

	err := filepath.WalkDir(r.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}

		artifact, err := LoadArtifact(path)
		if err != nil {
			r.log.Debug("skipping artifact", "path", path, "error", err)
			return nil
		}

		r.byName[artifact.Name] = append(r.byName[artifact.Name], artifact)
		r.byKey[artifact.Key()] = artifact
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.dir, "count", len(r.byKey))
	return nil
}

// suggest returns indexed names that fuzzy match the query
func (r *Repository) suggest(query string) []string {
	if i := strings.LastIndex(query, ":"); i >= 0 {
		query = query[i+1:]
	}
	names := lo.Keys(r.byName)
	sort.Strings(names)

	matches := fuzzy.Find(query, names)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// rawArtifact covers the fields shared by Truffle and Foundry output
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	SourcePath   string          `json:"sourcePath"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
	Compiler     struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Metadata json.RawMessage `json:"metadata"`
}

type foundryMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// LoadArtifact parses a Truffle or Foundry artifact file
func LoadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, path, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("%w: %s has no abi", domain.ErrInvalidArtifact, path)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: parse abi: %v", domain.ErrInvalidArtifact, path, err)
	}

	artifact := &models.Artifact{
		Name:         raw.ContractName,
		SourcePath:   raw.SourcePath,
		ArtifactPath: path,
		ABI:          parsed,
	}

	trimmed := bytes.TrimSpace(raw.Bytecode)
	var code string
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '"':
		artifact.Format = models.ArtifactFormatTruffle
		artifact.CompilerVersion = raw.Compiler.Version
		if err := json.Unmarshal(trimmed, &code); err != nil {
			return nil, fmt.Errorf("%w: %s: bytecode: %v", domain.ErrInvalidArtifact, path, err)
		}
	case trimmed[0] == '{':
		artifact.Format = models.ArtifactFormatFoundry
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %s: bytecode: %v", domain.ErrInvalidArtifact, path, err)
		}
		code = obj.Object
		applyFoundryMetadata(artifact, raw.Metadata)
	default:
		return nil, fmt.Errorf("%w: %s: unexpected bytecode encoding", domain.ErrInvalidArtifact, path)
	}

	if artifact.Name == "" {
		artifact.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	if code != "" {
		if strings.Contains(code, "__") {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnlinkedLibrary, artifact.Name)
		}
		if !strings.HasPrefix(code, "0x") {
			code = "0x" + code
		}
		artifact.Bytecode, err = hexutil.Decode(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: decode bytecode: %v", domain.ErrInvalidArtifact, path, err)
		}
	}

	return artifact, nil
}

// applyFoundryMetadata fills source path and compiler version from Foundry's metadata object
func applyFoundryMetadata(artifact *models.Artifact, raw json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return
	}
	var meta foundryMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return
	}
	artifact.CompilerVersion = meta.Compiler.Version
	for source, name := range meta.Settings.CompilationTarget {
		if artifact.SourcePath == "" {
			artifact.SourcePath = source
		}
		if artifact.Name == "" {
			artifact.Name = name
		}
	}
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
