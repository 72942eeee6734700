package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// FilesystemStore loads artifact bundles from JSON files on disk, one file
// per version (<dir>/<version>.json). It implements port.ArtifactStore.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates a store rooted at dir.
func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{dir: dir}
}

// Load reads and validates the artifact bundle for a model version.
func (s *FilesystemStore) Load(ctx context.Context, version string) ([]port.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("model version is required")
	}

	path := filepath.Join(s.dir, version+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact bundle %s: %w", path, err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("decode artifact bundle %s: %w", path, err)
	}
	if bundle.Version != version {
		return nil, fmt.Errorf("artifact bundle %s declares version %q, expected %q", path, bundle.Version, version)
	}

	models, err := bundle.Build()
	if err != nil {
		return nil, fmt.Errorf("build models from %s: %w", path, err)
	}
	return models, nil
}

var _ port.ArtifactStore = (*FilesystemStore)(nil)
