// Package icons builds the icon fingerprint table: a SHA-256 digest for
// every icon under the repository's icons directory, keyed by the icon's
// path relative to that directory.
package icons

import (
	"github.com/arthur-debert/makecatalogs/pkg/filesystem"
	"github.com/arthur-debert/makecatalogs/pkg/internal/hashutil"
	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
)

// Table maps an icon's relative path to its hex SHA-256 digest. It is
// read-only once Build returns.
type Table map[string]string

// Lookup returns the fingerprint for name.
func (t Table) Lookup(name string) (string, bool) {
	hash, ok := t[name]
	return hash, ok
}

// Progress receives one call per icon before it is hashed.
type Progress interface {
	Hashing(iconPath string)
}

// Build hashes every non-hidden file under root. A missing root is
// reported as advisory and yields a nil table, which disables icon
// hashing for the run. Unreadable icons are reported as failures and
// skipped.
func Build(s types.Storage, root string, rep *report.Report, progress Progress) Table {
	logger := logging.GetLogger("icons")

	if !s.Exists(root) {
		rep.Advise("WARNING: %s does not exist, icon hashes will not be calculated.", root)
		logger.Info().Str("path", root).Msg("Icons directory missing, icon hashing disabled")
		return nil
	}

	table := make(Table)
	err := filesystem.Walk(s, root, func(dir string, dirs, files []string) ([]string, error) {
		for _, name := range files {
			if filesystem.IsHidden(name) {
				continue
			}
			path := s.Join(dir, name)
			rel := filesystem.Rel(root, path)
			progress.Hashing(rel)

			hash, err := hashutil.FileChecksum(s, path)
			if err != nil {
				rep.Fail("ERROR: while hashing icon %s: %v", rel, err)
				logger.Warn().Err(err).Str("path", path).Msg("Failed to hash icon")
				continue
			}
			table[rel] = hash
			logger.Debug().Str("icon", rel).Str("hash", hash).Msg("Hashed icon")
		}
		return filesystem.HiddenNames(dirs), nil
	})
	if err != nil {
		rep.Fail("ERROR: could not scan %s: %v", root, err)
		logger.Error().Err(err).Str("path", root).Msg("Icon scan aborted")
	}

	logger.Info().Int("count", len(table)).Msg("Icon table built")
	return table
}
