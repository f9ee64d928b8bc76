package filesystem

import (
	"sort"

	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/arthur-debert/makecatalogs/pkg/types"
)

// Plugin names accepted by New.
const (
	PluginFileRepo   = "FileRepo"
	PluginMemoryRepo = "MemoryRepo"
)

// Factory constructs a storage backend.
type Factory func() types.Storage

var plugins = map[string]Factory{
	PluginFileRepo:   NewOS,
	PluginMemoryRepo: NewMemory,
}

// New returns the storage backend registered under plugin. An empty name
// selects FileRepo.
func New(plugin string) (types.Storage, error) {
	if plugin == "" {
		plugin = PluginFileRepo
	}
	factory, ok := plugins[plugin]
	if !ok {
		return nil, errors.Newf(errors.ErrPluginUnknown, "unknown repository plugin %q", plugin).
			WithDetail("available", Plugins())
	}
	return factory(), nil
}

// Plugins returns the registered plugin names, sorted.
func Plugins() []string {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
