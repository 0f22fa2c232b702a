package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

const readAllEntriesConstant = -1

// OSFileSystem implements the read-only filesystem operations used by repository discovery.
type OSFileSystem struct{}

// NewOSFileSystem constructs a filesystem backed by the operating system primitives.
func NewOSFileSystem() OSFileSystem {
	return OSFileSystem{}
}

// ReadDir lists directory entries in the order returned by the operating system.
// Unlike os.ReadDir the entries are not sorted by name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	directory, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer directory.Close()
	return directory.ReadDir(readAllEntriesConstant)
}

// Stat retrieves file metadata, following symbolic links.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// EvalSymlinks resolves symbolic links within the path.
func (OSFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}
