package pkginfo

import (
	"fmt"

	"github.com/arthur-debert/makecatalogs/pkg/icons"
	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
	"github.com/rs/zerolog"
)

// PkgsDir is the repository directory holding installer items.
const PkgsDir = "pkgs"

// AllCatalog is the implicit catalog every accepted descriptor joins.
const AllCatalog = "all"

// Options controls validation policy.
type Options struct {
	// Force admits descriptors whose referenced items are missing.
	Force bool
	// SkipPkgCheck disables the installer and uninstaller checks entirely.
	SkipPkgCheck bool
	// Icons is the fingerprint table; nil disables icon hashing.
	Icons icons.Table
}

// Validator checks descriptors against one repository.
type Validator struct {
	storage  types.Storage
	repoRoot string
	opts     Options
	report   *report.Report
	logger   zerolog.Logger
}

// NewValidator returns a Validator recording problems into rep.
func NewValidator(s types.Storage, repoRoot string, opts Options, rep *report.Report) *Validator {
	return &Validator{
		storage:  s,
		repoRoot: repoRoot,
		opts:     opts,
		report:   rep,
		logger:   logging.GetLogger("pkginfo.validator"),
	}
}

// Validate prepares d for publishing and returns the named catalogs it
// belongs to besides "all". ok is false when d must be left out of every
// catalog. path identifies the descriptor in messages.
func (v *Validator) Validate(path string, d Descriptor) (catalogs []string, ok bool) {
	if _, hasName := d.Name(); !hasName {
		v.report.Fail("WARNING: file %s is missing name", path)
		return nil, false
	}

	d.StripAdministrative()
	v.attachIconHash(path, d)

	if !v.opts.SkipPkgCheck {
		if !v.checkInstaller(path, d) || !v.checkUninstaller(path, d) {
			v.logger.Debug().Str("path", path).Msg("Descriptor skipped")
			return nil, false
		}
	}

	return v.memberships(path, d), true
}

func (v *Validator) attachIconHash(path string, d Descriptor) {
	if v.opts.Icons == nil {
		return
	}

	if !d.Has(KeyIconName) {
		name, _ := d.Name()
		if hash, found := v.opts.Icons.Lookup(name + ".png"); found {
			d[KeyIconHash] = hash
		}
		return
	}

	iconName, isString := d.String(KeyIconName)
	if !isString {
		v.report.Advise("WARNING: file %s has an invalid icon_name: %v", path, d[KeyIconName])
		return
	}
	hash, found := v.opts.Icons.Lookup(iconName)
	if !found {
		hash, found = v.opts.Icons.Lookup(iconName + ".png")
	}
	if !found {
		v.report.Advise("WARNING: icon_name specified in %s but %s does not exist.", path, iconName)
		return
	}
	d[KeyIconHash] = hash
}

// missing records a reference problem that force mode may override and
// reports whether the descriptor survives it.
func (v *Validator) missing(format string, args ...any) bool {
	if v.opts.Force {
		v.report.Advise(format, args...)
		return true
	}
	v.report.Fail(format, args...)
	return false
}

func (v *Validator) checkInstaller(path string, d Descriptor) bool {
	if !d.hostsInstallerItem() {
		return true
	}
	if !d.Has(KeyInstallerItemLocation) {
		return v.missing("WARNING: file %s is missing installer_item_location", path)
	}
	return v.checkItem(path, d, KeyInstallerItemLocation, "installer")
}

func (v *Validator) checkUninstaller(path string, d Descriptor) bool {
	if method, _ := d.String(KeyUninstallMethod); method == UninstallPackage && !d.Has(KeyUninstallerItemLocation) {
		if !v.missing("WARNING: file %s is missing uninstaller_item_location", path) {
			return false
		}
	}
	if !d.Has(KeyUninstallerItemLocation) {
		return true
	}
	return v.checkItem(path, d, KeyUninstallerItemLocation, "uninstaller")
}

// checkItem verifies that the location at key names an existing item under
// pkgs. A malformed location always rejects the descriptor.
func (v *Validator) checkItem(path string, d Descriptor, key, kind string) bool {
	location, err := itemLocation(d, key)
	if err != nil {
		v.report.Fail("WARNING: file %s has an invalid %s: %v", path, key, err)
		return false
	}

	itemPath := v.storage.Join(v.repoRoot, PkgsDir, location)
	if !v.storage.Exists(itemPath) {
		return v.missing("WARNING: Info file %s refers to missing %s item: %s", path, kind, location)
	}
	return true
}

func itemLocation(d Descriptor, key string) (string, error) {
	raw := d[key]
	location, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", raw)
	}
	if location == "" {
		return "", fmt.Errorf("location is empty")
	}
	return location, nil
}

// memberships returns the distinct named catalogs listed by d, in listed
// order. "all" is implicit and never returned.
func (v *Validator) memberships(path string, d Descriptor) []string {
	raw, present := d[KeyCatalogs]
	if !present {
		return nil
	}

	var names []any
	switch list := raw.(type) {
	case []any:
		names = list
	case []string:
		for _, s := range list {
			names = append(names, s)
		}
	default:
		v.report.Fail("WARNING: Info file %s has an invalid catalogs value: %v", path, raw)
		return nil
	}

	seen := map[string]bool{AllCatalog: true}
	var catalogs []string
	for _, item := range names {
		name, isString := item.(string)
		switch {
		case !isString:
			v.report.Fail("WARNING: Info file %s has an invalid catalog name: %v", path, item)
		case name == "":
			v.report.Fail("WARNING: Info file %s has an empty catalog name!", path)
		case seen[name]:
			// listed twice
		default:
			seen[name] = true
			catalogs = append(catalogs, name)
		}
	}
	return catalogs
}
