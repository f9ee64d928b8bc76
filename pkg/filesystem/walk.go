package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/types"
)

// Walk visits root and every directory below it top-down, following
// symlinks. Entries are visited in lexical order. Subdirectories named in
// the prune list returned by fn are not entered. A subdirectory that cannot
// be listed is logged and skipped; a failure to list root is returned.
// A directory reached a second time through a symlink is not entered
// again, so links back to an ancestor do not loop.
func Walk(s types.Storage, root string, fn types.WalkFunc) error {
	info, err := s.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "walk", Path: root, Err: fs.ErrInvalid}
	}
	entries, err := s.ReadDir(root)
	if err != nil {
		return err
	}
	w := &walker{s: s, fn: fn, visited: []fs.FileInfo{info}}
	return w.walkDir(root, entries)
}

type walker struct {
	s  types.Storage
	fn types.WalkFunc
	// visited holds every directory entered so far.
	visited []fs.FileInfo
}

func (w *walker) walkDir(dir string, entries []fs.DirEntry) error {
	logger := logging.GetLogger("filesystem.walk")

	dirs, files := splitEntries(w.s, dir, entries)
	prune, err := w.fn(dir, dirs, files)
	if err != nil {
		return err
	}

	skip := make(map[string]bool, len(prune))
	for _, name := range prune {
		skip[name] = true
	}

	for _, name := range dirs {
		if skip[name] {
			continue
		}
		sub := w.s.Join(dir, name)
		info, err := w.s.Stat(sub)
		if err != nil {
			logger.Warn().Err(err).Str("path", sub).Msg("Cannot stat directory, skipping")
			continue
		}
		if w.seen(info) {
			logger.Debug().Str("path", sub).Msg("Directory already visited, skipping")
			continue
		}
		subEntries, err := w.s.ReadDir(sub)
		if err != nil {
			logger.Warn().Err(err).Str("path", sub).Msg("Cannot list directory, skipping")
			continue
		}
		w.visited = append(w.visited, info)
		if err := w.walkDir(sub, subEntries); err != nil {
			return err
		}
	}
	return nil
}

// seen reports whether info names a directory already entered. Backends
// without file identity (the memory filesystem) never match.
func (w *walker) seen(info fs.FileInfo) bool {
	for _, v := range w.visited {
		if os.SameFile(v, info) {
			return true
		}
	}
	return false
}

// splitEntries separates directory entries into subdirectory and file
// names. Symlinks are classified by their target; a dangling link counts
// as a file.
func splitEntries(s types.Storage, dir string, entries []fs.DirEntry) (dirs, files []string) {
	for _, entry := range entries {
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := s.Stat(s.Join(dir, entry.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		if isDir {
			dirs = append(dirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}
	return dirs, files
}

// IsHidden reports whether name follows the dot-file convention.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// HiddenNames returns the hidden entries of names, suitable as a WalkFunc
// prune list.
func HiddenNames(names []string) []string {
	var hidden []string
	for _, name := range names {
		if IsHidden(name) {
			hidden = append(hidden, name)
		}
	}
	return hidden
}

// Rel returns path relative to root, or path unchanged when it is not
// below root.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
