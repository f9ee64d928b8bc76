package catalogs

import (
	"github.com/arthur-debert/makecatalogs/pkg/codec"
	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
)

// Dir is the repository directory catalogs are written to.
const Dir = "catalogs"

// Progress receives one call per catalog file written.
type Progress interface {
	Created(catalogPath string)
}

// Writer replaces the catalog set in one repository.
type Writer struct {
	storage  types.Storage
	dir      string
	report   *report.Report
	progress Progress
}

// NewWriter returns a Writer targeting repoRoot's catalogs directory.
func NewWriter(s types.Storage, repoRoot string, rep *report.Report, progress Progress) *Writer {
	return &Writer{
		storage:  s,
		dir:      s.Join(repoRoot, Dir),
		report:   rep,
		progress: progress,
	}
}

// Write removes every file in the catalogs directory, then writes one file
// per non-empty catalog in sorted name order. It returns the paths written.
// Per-catalog problems are recorded in the report; only a catalogs
// directory that cannot be created or listed is returned as an error.
func (w *Writer) Write(agg *Aggregator) ([]string, error) {
	logger := logging.GetLogger("catalogs.writer")
	defer logging.LogOperationStart(logger, "write catalogs")()

	if !w.storage.Exists(w.dir) {
		if err := w.storage.MkdirAll(w.dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", w.dir).
				WithDetail("path", w.dir)
		}
	}

	if err := w.clear(); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range agg.Names() {
		path := w.storage.Join(w.dir, name)
		items := agg.Catalog(name)

		if w.storage.Exists(path) {
			w.report.Fail("WARNING: catalog %s already exists at %s. Perhaps this is a non-case sensitive filesystem and you have catalogs with names differing only in case?", name, path)
			continue
		}
		if len(items) == 0 {
			w.report.Fail("WARNING: Did not create catalog %s because it is empty", name)
			continue
		}

		data, err := codec.EncodeCatalog(items)
		if err != nil {
			w.report.Fail("ERROR: could not encode catalog %s: %v", name, err)
			continue
		}
		if err := w.storage.WriteFile(path, data, 0644); err != nil {
			w.report.Fail("ERROR: could not write catalog %s: %v", path, err)
			continue
		}

		logger.Info().Str("catalog", name).Int("count", len(items)).Str("path", path).Msg("Catalog written")
		w.progress.Created(path)
		written = append(written, path)
	}
	return written, nil
}

// clear removes the regular files directly inside the catalogs directory.
func (w *Writer) clear() error {
	entries, err := w.storage.ReadDir(w.dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot list %s", w.dir).
			WithDetail("path", w.dir)
	}
	for _, entry := range entries {
		path := w.storage.Join(w.dir, entry.Name())
		if !w.storage.IsFile(path) {
			continue
		}
		if err := w.storage.Remove(path); err != nil {
			w.report.Fail("ERROR: could not remove old catalog %s: %v", path, err)
		}
	}
	return nil
}
