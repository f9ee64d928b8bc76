package icons

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/makecatalogs/pkg/filesystem"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ hashed []string }

func (r *recorder) Hashing(p string) { r.hashed = append(r.hashed, p) }

// sha256("hello world")
const helloDigest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func write(t *testing.T, s types.Storage, path, content string) {
	t.Helper()
	require.NoError(t, s.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, s.WriteFile(path, []byte(content), 0644))
}

func TestBuildMissingRootIsAdvisory(t *testing.T) {
	rep := report.New()
	rec := &recorder{}

	table := Build(filesystem.NewMemory(), "/repo/icons", rep, rec)

	assert.Nil(t, table)
	assert.False(t, rep.Failed())
	require.Len(t, rep.Entries(), 1)
	assert.Contains(t, rep.Messages()[0], "/repo/icons does not exist")
	assert.Empty(t, rec.hashed)
}

func TestBuildHashesAndSkipsHidden(t *testing.T) {
	s := filesystem.NewMemory()
	write(t, s, "/repo/icons/Firefox.png", "hello world")
	write(t, s, "/repo/icons/apps/Chrome.png", "chrome")
	write(t, s, "/repo/icons/.DS_Store", "junk")
	write(t, s, "/repo/icons/.hidden/Secret.png", "secret")

	rep := report.New()
	rec := &recorder{}
	table := Build(s, "/repo/icons", rep, rec)

	assert.False(t, rep.Failed())
	assert.Empty(t, rep.Entries())
	assert.Len(t, table, 2)

	hash, ok := table.Lookup("Firefox.png")
	assert.True(t, ok)
	assert.Equal(t, helloDigest, hash)

	_, ok = table.Lookup("apps/Chrome.png")
	assert.True(t, ok)
	_, ok = table.Lookup(".hidden/Secret.png")
	assert.False(t, ok)

	assert.Equal(t, []string{"Firefox.png", "apps/Chrome.png"}, rec.hashed)
}

func TestBuildEmptyRoot(t *testing.T) {
	s := filesystem.NewMemory()
	require.NoError(t, s.MkdirAll("/repo/icons", 0755))

	table := Build(s, "/repo/icons", report.New(), &recorder{})
	assert.NotNil(t, table)
	assert.Empty(t, table)
}

// brokenOpen fails Open for one path.
type brokenOpen struct {
	types.Storage
	path string
}

func (b brokenOpen) Open(name string) (io.ReadCloser, error) {
	if name == b.path {
		return nil, errors.New("permission denied")
	}
	return b.Storage.Open(name)
}

func TestBuildReadFailureContinues(t *testing.T) {
	mem := filesystem.NewMemory()
	write(t, mem, "/repo/icons/A.png", "a")
	write(t, mem, "/repo/icons/B.png", "b")
	write(t, mem, "/repo/icons/apps/C.png", "c")
	s := brokenOpen{Storage: mem, path: "/repo/icons/A.png"}

	rep := report.New()
	rec := &recorder{}
	table := Build(s, "/repo/icons", rep, rec)

	assert.True(t, rep.Failed())
	require.Len(t, rep.Messages(), 1)
	assert.Contains(t, rep.Messages()[0], "A.png")
	assert.Len(t, rec.hashed, 3)
	_, ok := table.Lookup("B.png")
	assert.True(t, ok)
	_, ok = table.Lookup("apps/C.png")
	assert.True(t, ok)
	_, ok = table.Lookup("A.png")
	assert.False(t, ok)
}
