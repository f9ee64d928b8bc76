package pkginfo

import "strings"

// Well-known descriptor keys.
const (
	KeyName                    = "name"
	KeyNotes                   = "notes"
	KeyCatalogs                = "catalogs"
	KeyIconName                = "icon_name"
	KeyIconHash                = "icon_hash"
	KeyInstallerType           = "installer_type"
	KeyInstallerItemLocation   = "installer_item_location"
	KeyUninstallMethod         = "uninstall_method"
	KeyUninstallerItemLocation = "uninstaller_item_location"
	KeyPackageCompleteURL      = "PackageCompleteURL"
	KeyPackageURL              = "PackageURL"
)

// UninstallPackage is the uninstall_method that requires an uninstaller item.
const UninstallPackage = "uninstall_package"

// noDownloadTypes are installer types that have no installer item.
var noDownloadTypes = map[string]bool{
	"nopkg":                 true,
	"apple_update_metadata": true,
}

// Descriptor is one pkginfo record.
type Descriptor map[string]any

// Has reports whether key is present.
func (d Descriptor) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value at key if it is a string.
func (d Descriptor) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Name returns the descriptor's name.
func (d Descriptor) Name() (string, bool) {
	return d.String(KeyName)
}

// StripAdministrative removes notes and every underscore-prefixed key.
func (d Descriptor) StripAdministrative() {
	delete(d, KeyNotes)
	for key := range d {
		if strings.HasPrefix(key, "_") {
			delete(d, key)
		}
	}
}

// hostsInstallerItem reports whether the descriptor's installer item is
// expected to live in the repository's pkgs directory.
func (d Descriptor) hostsInstallerItem() bool {
	if t, _ := d.String(KeyInstallerType); noDownloadTypes[t] {
		return false
	}
	return !d.Has(KeyPackageCompleteURL) && !d.Has(KeyPackageURL)
}
