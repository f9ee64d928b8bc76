// Package plist reads and writes XML property lists.
//
// Decoded documents use plain Go values: map[string]any for <dict>, []any
// for <array>, string, int64, float64, bool, time.Time and []byte. Encoding
// accepts the same set, plus the usual integer widths, []string and any
// string-keyed map or slice reachable through reflection. Dictionary keys
// are written in sorted order so equal values always encode to equal bytes.
package plist
