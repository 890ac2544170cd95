package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalStore keeps archived objects in a directory
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Put writes data under objectName, which may contain slashes
func (l *LocalStore) Put(_ context.Context, objectName, _ string, data []byte) error {
	path, err := l.resolve(objectName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// List returns object names under prefix in lexical order
func (l *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// URL returns a file:// URL; expiry is ignored
func (l *LocalStore) URL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	path, err := l.resolve(objectName)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", objectName, err)
	}
	return "file://" + filepath.ToSlash(path), nil
}

// Location describes where objects end up
func (l *LocalStore) Location() string {
	return l.root
}

func (l *LocalStore) resolve(objectName string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(objectName))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}
	return filepath.Join(l.root, clean), nil
}
