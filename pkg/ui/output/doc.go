// Package output writes makecatalogs' user-facing console output.
//
// Progress lines (one per icon hashed, one per catalog membership, one per
// catalog file created) go to the standard stream. Warnings and errors from
// the run report go to the error stream as a grouped block. Styles come from
// the styles subpackage and are applied only when the destination is a
// terminal and NO_COLOR is unset.
package output
