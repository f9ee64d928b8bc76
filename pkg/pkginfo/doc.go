// Package pkginfo defines the Descriptor, the metadata record read from one
// pkginfo file, and the Validator that decides whether a descriptor may be
// published to catalogs.
//
// Validation strips administrative keys, attaches icon fingerprints, and
// checks that referenced installer and uninstaller items exist under the
// repository's pkgs directory. Force mode lets descriptors through when a
// referenced item is missing or a location key is absent. It never admits
// a descriptor with a malformed location or a missing name, and an empty
// catalog name always fails the run.
package pkginfo
