package filesystem

import (
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/makecatalogs/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.Storage using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.Storage {
	return &aferoFS{fs: fs}
}

// NewMemory returns an empty in-memory repository backend.
func NewMemory() types.Storage {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (a *aferoFS) Exists(name string) bool {
	ok, err := afero.Exists(a.fs, name)
	return err == nil && ok
}

func (a *aferoFS) IsFile(name string) bool {
	info, err := a.fs.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Open(name string) (io.ReadCloser, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return a.fs.Open(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}
