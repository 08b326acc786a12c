// Package filestore lists candidate files and reads their timestamps.
package filestore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

// LocalStore reads files from a directory tree using OS metadata.
type LocalStore struct {
	root string
}

var _ contract.FileStore = &LocalStore{} // Compile-time check

// NewLocalStore returns a store rooted at root.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Root returns the directory the store walks.
func (s *LocalStore) Root() string {
	return s.root
}

// ListFiles walks the root and returns regular files relative to it.
// Hidden directories such as .git and .obsidian are skipped.
func (s *LocalStore) ListFiles(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != s.root && IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := contract.ToSlashRel(s.root, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.root, err)
	}
	return files, nil
}

// Stat returns the creation and modification instants of a file under the root.
func (s *LocalStore) Stat(_ context.Context, path string) (schema.FileTimestamps, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	info, err := os.Stat(full)
	if err != nil {
		return schema.FileTimestamps{}, err
	}
	return schema.FileTimestamps{
		CreatedAt:  creationTime(full, info),
		ModifiedAt: info.ModTime(),
	}, nil
}

// IsHidden reports whether a file or directory name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
