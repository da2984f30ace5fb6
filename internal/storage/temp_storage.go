package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/anime-shed/kyc-verifier-go/internal/logger"
)

// TempStore holds per-request scratch files. Names are prefixed with a
// random identifier so concurrent requests never collide; every Save hands
// back a cleanup func the caller must defer, which runs on every exit path.
type TempStore struct {
	dir string
}

func NewTempStore(dir string) (*TempStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &TempStore{dir: dir}, nil
}

// Save writes data under a collision-free name and returns the path plus a
// cleanup func. Cleanup is idempotent and safe to defer unconditionally.
func (s *TempStore) Save(originalName string, data []byte) (string, func(), error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(originalName))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).WithField("path", path).Warn("Failed to delete temporary file")
		}
	}
	return path, cleanup, nil
}

// Dir returns the scratch directory.
func (s *TempStore) Dir() string {
	return s.dir
}
