// Package storage provides filesystem-backed publisher and ledger
// implementations for development and test environments where the Google
// collaborators are not configured.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

const (
	pendingDir   = "pending"
	confirmedDir = "confirmed"
)

// FileStore implements the artifact publisher contract on the local
// filesystem. Pending and confirmed areas are sibling subdirectories; moving
// an artifact is a rename.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath, creating both
// areas.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	for _, dir := range []string{pendingDir, confirmedDir} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("storage: ensure %s area: %w", dir, err)
		}
	}
	return &FileStore{basePath: basePath}, nil
}

// Upload writes the bytes into the pending area. The artifact id is the
// area-relative key; the link is an absolute file path.
func (s *FileStore) Upload(ctx context.Context, data []byte, name, mimeType string) (domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}
	clean, err := sanitizeName(name)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}
	fullPath := filepath.Join(s.basePath, pendingDir, clean)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return domain.Artifact{}, fmt.Errorf("%w: write %s: %v", domain.ErrPublish, clean, err)
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		abs = fullPath
	}
	return domain.Artifact{ID: pendingDir + "/" + clean, Name: clean, Link: "file://" + abs}, nil
}

// ListPending returns pending artifacts whose name contains the fragment.
func (s *FileStore) ListPending(ctx context.Context, nameContains string) ([]domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.basePath, pendingDir))
	if err != nil {
		return nil, fmt.Errorf("%w: list pending: %v", domain.ErrPublish, err)
	}
	var out []domain.Artifact
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), nameContains) {
			continue
		}
		full := filepath.Join(s.basePath, pendingDir, e.Name())
		abs, err := filepath.Abs(full)
		if err != nil {
			abs = full
		}
		out = append(out, domain.Artifact{ID: pendingDir + "/" + e.Name(), Name: e.Name(), Link: "file://" + abs})
	}
	return out, nil
}

// MoveToConfirmed renames a pending artifact into the confirmed area.
func (s *FileStore) MoveToConfirmed(ctx context.Context, artifactID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, ok := strings.CutPrefix(artifactID, pendingDir+"/")
	if !ok {
		return fmt.Errorf("%w: artifact %q is not in the pending area", domain.ErrPublish, artifactID)
	}
	clean, err := sanitizeName(name)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}
	src := filepath.Join(s.basePath, pendingDir, clean)
	dst := filepath.Join(s.basePath, confirmedDir, clean)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("%w: move %s: %v", domain.ErrPublish, clean, err)
	}
	return nil
}

// sanitizeName rejects names that would escape the storage areas.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("artifact name is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	if strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	return name, nil
}

var _ domain.Publisher = (*FileStore)(nil)
