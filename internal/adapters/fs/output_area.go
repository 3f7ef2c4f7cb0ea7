package fs

import (
	"fmt"
	"path/filepath"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// OutputArea owns a single output directory. Reset clears it; WriteFile
// writes paths relative to it.
type OutputArea struct {
	fs   FileSystem
	root string
}

func NewOutputArea(fs FileSystem, root string) *OutputArea {
	return &OutputArea{fs: fs, root: root}
}

func (a *OutputArea) Root() string {
	return a.root
}

// Reset removes the output directory if it exists and recreates it empty.
func (a *OutputArea) Reset() error {
	if err := a.fs.RemoveAll(a.root); err != nil {
		return fmt.Errorf("failed to remove output dir %s: %w", a.root, err)
	}
	if err := a.fs.MkdirAll(a.root, dirPerm); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", a.root, err)
	}
	return nil
}

// WriteFile writes content to rel under the output root, creating missing
// parent directories. An existing file is overwritten. It returns the path
// that was written.
func (a *OutputArea) WriteFile(rel string, content string) (string, error) {
	path := filepath.Join(a.root, filepath.FromSlash(rel))
	if err := WriteText(a.fs, path, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteText creates path's missing ancestors and writes content to it.
func WriteText(fs FileSystem, path string, content string) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", path, err)
	}
	if err := fs.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
