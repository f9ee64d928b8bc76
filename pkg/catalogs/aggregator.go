// Package catalogs groups accepted descriptors into named catalogs and
// writes them to the repository's catalogs directory.
package catalogs

import (
	"sort"

	"github.com/arthur-debert/makecatalogs/pkg/pkginfo"
)

// Aggregator accumulates descriptors per catalog name for one run. The
// "all" catalog exists from the start.
type Aggregator struct {
	groups map[string][]pkginfo.Descriptor
}

// NewAggregator returns an Aggregator holding only an empty "all" catalog.
func NewAggregator() *Aggregator {
	return &Aggregator{
		groups: map[string][]pkginfo.Descriptor{pkginfo.AllCatalog: {}},
	}
}

// Add appends d to catalog, creating the catalog on first use.
func (a *Aggregator) Add(catalog string, d pkginfo.Descriptor) {
	a.groups[catalog] = append(a.groups[catalog], d)
}

// Commit adds d to "all" and to each named catalog.
func (a *Aggregator) Commit(d pkginfo.Descriptor, catalogs []string) {
	a.Add(pkginfo.AllCatalog, d)
	for _, name := range catalogs {
		a.Add(name, d)
	}
}

// Names returns every catalog name in sorted order.
func (a *Aggregator) Names() []string {
	names := make([]string, 0, len(a.groups))
	for name := range a.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the descriptors of the named catalog in insertion order.
func (a *Aggregator) Catalog(name string) []pkginfo.Descriptor {
	return a.groups[name]
}

// Counts returns the number of entries per catalog.
func (a *Aggregator) Counts() map[string]int {
	counts := make(map[string]int, len(a.groups))
	for name, items := range a.groups {
		counts[name] = len(items)
	}
	return counts
}
