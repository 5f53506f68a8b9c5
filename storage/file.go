package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

// FileSource reads manifests from a local directory.
// The manifest of an environment lives at <dir>/<environment>.hcl.
type FileSource struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileSource creates a new file manifest source for baseDir.
// The directory does not need to exist yet; Available reports whether it does.
func NewFileSource(baseDir string, log *slog.Logger) *FileSource {
	return &FileSource{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}
}

// Fetch reads the manifest of env.
// Returns ErrBackendUnavailable if the base directory doesn't exist and
// ErrManifestNotFound if only the file is missing.
func (s *FileSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	if !s.Available(ctx) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrBackendUnavailable, s.baseDir)
	}

	filePath := s.path(env)

	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrManifestNotFound, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched manifest from file",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return data, nil
}

// Available checks if the base directory exists.
func (s *FileSource) Available(ctx context.Context) bool {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		s.log.Debug("File source unavailable", "err", err)
		return false
	}
	return info.IsDir()
}

// Name returns a unique identifier for this source.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this source.
func (s *FileSource) LocationURI() string {
	return s.locationURI
}

func (s *FileSource) path(env interfaces.Environment) string {
	return filepath.Join(s.baseDir, manifest.FileName(env))
}
