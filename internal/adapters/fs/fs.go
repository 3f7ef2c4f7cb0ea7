// Package fs is the storage port shared by the content loader, the output
// area and init. OSFileSystem backs it with the disk; ReadOnlyFileSystem
// serves an io/fs.FS such as the embedded starter.
package fs

import (
	iofs "io/fs"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	FileExists(path string) bool
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	RemoveAll(path string) error
}
