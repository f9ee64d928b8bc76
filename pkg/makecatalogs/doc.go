// Package makecatalogs runs the catalog build for one repository.
//
// A run has three phases, each finished before the next begins:
//
//  1. Icons: hash every icon under icons/ (optional directory).
//  2. Scan: decode and validate every descriptor under pkgsinfo/, adding
//     accepted descriptors to "all" and their listed catalogs.
//  3. Write: replace the contents of catalogs/ with the new catalog set.
//
// Per-item problems are collected in a report and never stop the run. A
// missing repository root or pkgsinfo directory stops the run before any
// catalog is touched.
package makecatalogs
