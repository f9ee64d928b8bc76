package makecatalogs

import (
	"github.com/arthur-debert/makecatalogs/pkg/catalogs"
	"github.com/arthur-debert/makecatalogs/pkg/codec"
	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/arthur-debert/makecatalogs/pkg/filesystem"
	"github.com/arthur-debert/makecatalogs/pkg/icons"
	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/pkginfo"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
	"github.com/arthur-debert/makecatalogs/pkg/ui/output"
)

// Repository subdirectories.
const (
	PkgsinfoDir = "pkgsinfo"
	IconsDir    = "icons"
)

// Options configures one run.
type Options struct {
	RepoRoot     string
	Force        bool
	SkipPkgCheck bool
}

// Result summarizes a completed run.
type Result struct {
	// Report holds every warning and error raised.
	Report *report.Report
	// Counts is the number of entries per catalog, including unwritten ones.
	Counts map[string]int
	// Written lists the catalog files created, in write order.
	Written []string
}

// ExitCode is the process status for the run.
func (r *Result) ExitCode() int {
	return r.Report.ExitCode()
}

// Run builds catalogs for the repository at opts.RepoRoot. The returned
// error is non-nil only for fatal preconditions; everything else is in
// the result's report.
func Run(s types.Storage, opts Options, printer *output.Printer) (*Result, error) {
	logger := logging.GetLogger("makecatalogs")

	if !s.Exists(opts.RepoRoot) {
		return nil, errors.Newf(errors.ErrRepoNotFound, "Repo root path %s doesn't exist", opts.RepoRoot).
			WithDetail("path", opts.RepoRoot)
	}
	pkgsinfoRoot := s.Join(opts.RepoRoot, PkgsinfoDir)
	if !s.Exists(pkgsinfoRoot) {
		return nil, errors.Newf(errors.ErrPkgsinfoNotFound, "pkgsinfo path %s doesn't exist", pkgsinfoRoot).
			WithDetail("path", pkgsinfoRoot)
	}

	logger.Info().
		Str("repo", opts.RepoRoot).
		Bool("force", opts.Force).
		Bool("skipPkgCheck", opts.SkipPkgCheck).
		Msg("Building catalogs")

	rep := report.New()

	doneIcons := logging.LogOperationStart(logger, "hash icons")
	table := icons.Build(s, s.Join(opts.RepoRoot, IconsDir), rep, printer)
	doneIcons()

	validator := pkginfo.NewValidator(s, opts.RepoRoot, pkginfo.Options{
		Force:        opts.Force,
		SkipPkgCheck: opts.SkipPkgCheck,
		Icons:        table,
	}, rep)
	agg := catalogs.NewAggregator()

	doneScan := logging.LogOperationStart(logger, "scan pkgsinfo")
	err := filesystem.Walk(s, pkgsinfoRoot, func(dir string, dirs, files []string) ([]string, error) {
		for _, name := range files {
			if filesystem.IsHidden(name) {
				continue
			}
			path := s.Join(dir, name)
			display := filesystem.Rel(pkgsinfoRoot, path)

			dict, err := codec.ReadFile(s, path)
			if err != nil {
				rep.Fail("WARNING: Unexpected error reading %s: %v", display, err)
				logger.Warn().Err(err).Str("path", path).Msg("Cannot decode descriptor")
				continue
			}

			d := pkginfo.Descriptor(dict)
			memberships, ok := validator.Validate(display, d)
			if !ok {
				continue
			}

			agg.Commit(d, memberships)
			printer.Adding(display, pkginfo.AllCatalog)
			for _, catalog := range memberships {
				printer.Adding(display, catalog)
			}
		}
		return filesystem.HiddenNames(dirs), nil
	})
	doneScan()
	if err != nil {
		rep.Fail("ERROR: could not scan %s: %v", pkgsinfoRoot, err)
		logger.Error().Err(err).Msg("Descriptor scan aborted")
	}

	printer.Messages(rep.Pending())

	written, err := catalogs.NewWriter(s, opts.RepoRoot, rep, printer).Write(agg)
	if err != nil {
		return nil, err
	}
	printer.Messages(rep.Pending())

	logger.Info().
		Int("catalogs", len(written)).
		Bool("failed", rep.Failed()).
		Msg("Catalog build finished")

	return &Result{
		Report:  rep,
		Counts:  agg.Counts(),
		Written: written,
	}, nil
}
