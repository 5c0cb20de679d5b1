// Package filestore persists uploaded maritime documents on local disk.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Namespace for maritime document files under the storage root.
const maritimeDir = "maritime-documents"

// Store writes document files under a root directory.
type Store struct {
	root string
}

// New creates a file store rooted at dir, creating the maritime document
// namespace if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, maritimeDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{root: dir}, nil
}

// SaveMaritimeDocument writes data to a server-generated unique path and
// returns the path relative to the storage root. The client-supplied name
// is kept only as a suffix; a timestamp prefix avoids collisions between
// same-named uploads, and a uuid fallback covers same-second collisions.
func (s *Store) SaveMaritimeDocument(fileName string, data []byte) (string, error) {
	base := sanitizeName(fileName)
	if base == "" {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	rel := filepath.Join(maritimeDir, fmt.Sprintf("%d_%s", time.Now().Unix(), base))
	full := filepath.Join(s.root, rel)

	if _, err := os.Stat(full); err == nil {
		rel = filepath.Join(maritimeDir, fmt.Sprintf("%d_%s_%s", time.Now().Unix(), uuid.NewString()[:8], base))
		full = filepath.Join(s.root, rel)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	return rel, nil
}

// Remove deletes a previously saved document by its relative path.
// Missing files are not an error.
func (s *Store) Remove(relPath string) error {
	clean := filepath.Clean(relPath)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid document path %q", relPath)
	}
	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}

// sanitizeName strips any directory components from a client-supplied
// file name so it cannot escape the storage namespace.
func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}
