// Package download delivers captured frames to the user.
package download

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"truemirror/internal/blob"
	"truemirror/internal/capture"
)

var ErrRevoked = errors.New("link no longer references a blob")

// Directory saves downloads as files in a local directory.
type Directory struct {
	dir      string
	registry *blob.Registry
}

func NewDirectory(dir string, registry *blob.Registry) *Directory {
	return &Directory{dir: dir, registry: registry}
}

func (d *Directory) Path() string {
	return d.dir
}

// Deliver writes the linked blob under link.Download. The data goes to a
// hidden temporary file first and is renamed into place, so the directory
// never shows a partial capture.
func (d *Directory) Deliver(link capture.Link) error {
	b, ok := d.registry.Resolve(link.Href)
	if !ok {
		return ErrRevoked
	}

	name := filepath.Base(link.Download)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid download name %q", link.Download)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(d.dir, name)); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
