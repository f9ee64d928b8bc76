package styles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/makecatalogs/pkg/ui/output/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesRegistered(t *testing.T) {
	for _, name := range []string{"Header", "Progress", "Success", "Warning", "Error", "Catalog", "FilePath"} {
		t.Run(name, func(t *testing.T) {
			_, exists := styles.StyleRegistry[name]
			assert.True(t, exists, "style %s should exist", name)
		})
	}
}

func TestGetStyleUnknownIsPlain(t *testing.T) {
	assert.Equal(t, "text", styles.GetStyle("NoSuchStyle").Render("text"))
}

func TestLoadStyles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  pink: {light: "#ff00ff", dark: "#ff88ff"}
styles:
  Loud: {bold: true, foreground: pink}
`), 0644))

	require.NoError(t, styles.LoadStyles(path))
	t.Cleanup(func() {
		_ = styles.LoadStyles("styles.yaml")
	})

	_, ok := styles.StyleRegistry["Loud"]
	assert.True(t, ok)
	assert.True(t, styles.GetStyle("Loud").GetBold())
}

func TestLoadStylesErrors(t *testing.T) {
	assert.Error(t, styles.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [not, a, map")))
}
