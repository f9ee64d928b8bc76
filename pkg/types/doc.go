// Package types defines the interfaces shared across makecatalogs: the
// Storage capability every repository backend satisfies and the WalkFunc
// used to traverse it.
package types
