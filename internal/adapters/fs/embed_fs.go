package fs

import (
	"errors"
	iofs "io/fs"
)

var ErrReadOnly = errors.New("filesystem is read-only")

// ReadOnlyFileSystem exposes an io/fs.FS (usually an embed.FS) through the
// FileSystem port. Every write fails with ErrReadOnly.
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func (fs *ReadOnlyFileSystem) ReadFile(path string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, path)
}

func (fs *ReadOnlyFileSystem) ReadDir(path string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, path)
}

func (fs *ReadOnlyFileSystem) FileExists(path string) bool {
	_, err := iofs.Stat(fs.fs, path)
	return err == nil
}

func (fs *ReadOnlyFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return iofs.WalkDir(fs.fs, root, fn)
}

func (fs *ReadOnlyFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) RemoveAll(path string) error {
	return ErrReadOnly
}
