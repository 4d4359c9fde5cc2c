package blueprints

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
	"github.com/trebuchet-org/rt-deploy/internal/domain/config"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
	"github.com/trebuchet-org/rt-deploy/internal/usecase"
)

const maxSuggestions = 3

// Repository discovers and indexes compiled artifacts. Compilation itself is
// left to hardhat or forge; only their output directories are read.
type Repository struct {
	artifactDirs     []string
	projectRoot      string
	blueprints       map[string]*models.Blueprint   // key: "path:Name"
	blueprintsByName map[string][]*models.Blueprint // key: contract name
	log              *slog.Logger
	mu               sync.RWMutex
	indexed          bool
}

// NewRepository creates a new blueprint repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactDirs:     cfg.ArtifactDirs,
		projectRoot:      cfg.ProjectRoot,
		log:              log.With("component", "blueprints"),
		blueprints:       make(map[string]*models.Blueprint),
		blueprintsByName: make(map[string][]*models.Blueprint),
	}
}

// Index discovers all deployable artifacts. Subsequent calls are no-ops.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.blueprints = make(map[string]*models.Blueprint)
	r.blueprintsByName = make(map[string][]*models.Blueprint)

	for _, dir := range r.artifactDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			r.log.Debug("artifact directory not found", "dir", dir)
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip non-artifacts and hardhat debug files
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}

			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", dir, err)
		}
	}

	r.log.Debug("indexed artifacts", "count", len(r.blueprints))
	r.indexed = true
	return nil
}

// processArtifact adds a single artifact file to the index
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath) //nolint:gosec // walking the artifacts dir
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file in the output tree is an artifact
		r.log.Debug("skipping unparsable artifact", "path", artifactPath, "error", err)
		return nil
	}

	// Interfaces and abstract contracts have no creation code
	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return nil
	}

	sourceName, contractName := artifactIdentity(&artifact, artifactPath)
	if contractName == "" || sourceName == "" {
		return nil
	}

	relArtifactPath := artifactPath
	if rel, err := filepath.Rel(r.projectRoot, artifactPath); err == nil {
		relArtifactPath = rel
	}

	blueprint := &models.Blueprint{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Format:       artifact.Format(),
		Artifact:     &artifact,
	}

	// First directory wins when the same source is compiled twice
	key := blueprint.FullyQualifiedName()
	if existing, ok := r.blueprints[key]; ok {
		r.log.Debug("duplicate artifact ignored", "blueprint", key, "kept", existing.ArtifactPath, "ignored", relArtifactPath)
		return nil
	}

	r.blueprints[key] = blueprint
	r.blueprintsByName[contractName] = append(r.blueprintsByName[contractName], blueprint)

	return nil
}

// artifactIdentity determines source path and contract name. Hardhat stores
// them in the artifact, Foundry in metadata or the "Source.sol/Name.json" layout.
func artifactIdentity(artifact *models.Artifact, artifactPath string) (sourceName, contractName string) {
	if artifact.ContractName != "" && artifact.SourceName != "" {
		return artifact.SourceName, artifact.ContractName
	}

	if source, name, ok := artifact.CompilationTarget(); ok {
		return source, name
	}

	contractName = strings.TrimSuffix(filepath.Base(artifactPath), ".json")
	sourceName = filepath.Base(filepath.Dir(artifactPath))
	if filepath.Ext(sourceName) != ".sol" && filepath.Ext(sourceName) != ".vy" {
		return "", ""
	}
	return sourceName, contractName
}

// GetBlueprint resolves a blueprint by bare name or "path:Name"
func (r *Repository) GetBlueprint(ctx context.Context, name string) (*models.Blueprint, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if blueprint, ok := r.blueprints[name]; ok {
		return blueprint, nil
	}

	// "Name" may also be written as "Source.sol:Name" without the directory
	if strings.Contains(name, ":") {
		matches := lo.Filter(lo.Values(r.blueprints), func(bp *models.Blueprint, _ int) bool {
			return strings.HasSuffix(bp.FullyQualifiedName(), "/"+name)
		})
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return nil, ambiguous(name, matches)
		}
		return nil, r.notFound(name)
	}

	matches := r.blueprintsByName[name]
	switch len(matches) {
	case 0:
		return nil, r.notFound(name)
	case 1:
		return matches[0], nil
	default:
		return nil, ambiguous(name, matches)
	}
}

// ListBlueprints returns every indexed blueprint ordered by fully qualified name
func (r *Repository) ListBlueprints(ctx context.Context) ([]*models.Blueprint, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Values(r.blueprints)
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullyQualifiedName() < result[j].FullyQualifiedName()
	})
	return result, nil
}

// notFound builds the error with the closest known names. Caller holds the lock.
func (r *Repository) notFound(name string) error {
	names := lo.Keys(r.blueprintsByName)
	sort.Strings(names)

	matches := fuzzy.Find(strings.ToLower(name), lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(n)
	}))

	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string {
		return names[m.Index]
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return domain.BlueprintNotFoundError{
		Name:        name,
		Suggestions: suggestions,
	}
}

func ambiguous(name string, matches []*models.Blueprint) error {
	return domain.AmbiguousBlueprintError{
		Name: name,
		Matches: lo.Map(matches, func(bp *models.Blueprint, _ int) string {
			return bp.FullyQualifiedName()
		}),
	}
}

// Ensure the adapter implements the interface
var _ usecase.BlueprintRepository = (*Repository)(nil)
