package types

import (
	"io"
	"io/fs"
)

// Storage is the capability a repository backend must provide. Paths are
// backend-native; callers build them with Join and never assume a separator.
type Storage interface {
	// Path operations
	Join(elem ...string) string
	Exists(name string) bool
	IsFile(name string) bool

	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
}

// WalkFunc is called once per directory visited by filesystem.Walk, with the
// names of the directory's subdirectories and files. The returned names are
// subdirectories that must not be descended into. A non-nil error stops the
// walk and is returned by Walk.
type WalkFunc func(dir string, dirs, files []string) (prune []string, err error)
