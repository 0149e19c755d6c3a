// Package storage provides blob storage for uploaded files under a single
// flat namespace with caller-supplied unique names.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("file not found")

// Disk stores blobs as files in a single directory.
type Disk struct {
	dir string
}

// NewDisk creates a Disk store rooted at dir, creating it if needed.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Put writes data under the given name, overwriting any existing blob.
func (d *Disk) Put(name string, data []byte) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads the blob stored under the given name.
func (d *Disk) Get(name string) ([]byte, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes the blob stored under the given name.
func (d *Disk) Delete(name string) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// path resolves a name inside the store directory, rejecting anything that
// would escape it.
func (d *Disk) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return "", ErrNotFound
	}
	return filepath.Join(d.dir, name), nil
}
