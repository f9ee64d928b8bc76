// Package filesystem provides repository storage backends for makecatalogs.
//
// This package contains implementations of the types.Storage interface,
// the native OS filesystem and an afero-backed filesystem used for
// in-memory repositories, plus a pruning directory walker and the plugin
// registry that selects a backend by name.
package filesystem
