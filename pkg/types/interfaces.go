package types

import (
	"io/fs"
)

// FS is the filesystem interface required for packup operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// DirExistsFunc reports whether a path, resolved against the project root,
// names an existing directory. Pattern normalization is the only consumer;
// the glob evaluator itself never touches the filesystem.
type DirExistsFunc func(rel string) bool
