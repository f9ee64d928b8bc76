package pkginfo

import (
	"testing"

	"github.com/arthur-debert/makecatalogs/pkg/filesystem"
	"github.com/arthur-debert/makecatalogs/pkg/icons"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoRoot = "/repo"

func newRepo(t *testing.T, items ...string) types.Storage {
	t.Helper()
	s := filesystem.NewMemory()
	require.NoError(t, s.MkdirAll("/repo/pkgs/apps", 0755))
	for _, item := range items {
		require.NoError(t, s.WriteFile(s.Join(repoRoot, PkgsDir, item), []byte("payload"), 0644))
	}
	return s
}

func validate(t *testing.T, s types.Storage, opts Options, d Descriptor) ([]string, bool, *report.Report) {
	t.Helper()
	rep := report.New()
	catalogs, ok := NewValidator(s, repoRoot, opts, rep).Validate("apps/Test.plist", d)
	return catalogs, ok, rep
}

func TestDescriptorStripAdministrative(t *testing.T) {
	d := Descriptor{
		"name":      "Firefox",
		"notes":     "internal",
		"_metadata": map[string]any{"created_by": "admin"},
		"_x":        true,
		"version":   "1.0",
	}
	d.StripAdministrative()
	assert.Equal(t, Descriptor{"name": "Firefox", "version": "1.0"}, d)
}

func TestValidateMissingName(t *testing.T) {
	for _, opts := range []Options{{}, {Force: true}} {
		catalogs, ok, rep := validate(t, newRepo(t), opts, Descriptor{"version": "1.0", "catalogs": []any{"testing"}})
		assert.False(t, ok)
		assert.Nil(t, catalogs)
		assert.True(t, rep.Failed())
		assert.Equal(t, []string{"WARNING: file apps/Test.plist is missing name"}, rep.Messages())
	}
}

func TestValidateAcceptsHostedItem(t *testing.T) {
	s := newRepo(t, "apps/Firefox.dmg")
	d := Descriptor{
		"name":                    "Firefox",
		"installer_item_location": "apps/Firefox.dmg",
		"catalogs":                []any{"testing", "production"},
		"notes":                   "secret",
		"_metadata":               map[string]any{},
	}

	catalogs, ok, rep := validate(t, s, Options{}, d)
	assert.True(t, ok)
	assert.Equal(t, []string{"testing", "production"}, catalogs)
	assert.Empty(t, rep.Entries())
	assert.False(t, d.Has("notes"))
	assert.False(t, d.Has("_metadata"))
}

func TestValidateInstallerChecks(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		force      bool
		wantOK     bool
		wantFailed bool
		wantMsg    string
	}{
		{
			name:       "nopkg needs no location",
			descriptor: Descriptor{"name": "Script", "installer_type": "nopkg"},
			wantOK:     true,
		},
		{
			name:       "apple update metadata needs no location",
			descriptor: Descriptor{"name": "Safari", "installer_type": "apple_update_metadata"},
			wantOK:     true,
		},
		{
			name:       "PackageCompleteURL exempts",
			descriptor: Descriptor{"name": "Remote", "PackageCompleteURL": "https://cdn/x.pkg"},
			wantOK:     true,
		},
		{
			name:       "PackageURL exempts",
			descriptor: Descriptor{"name": "Remote", "PackageURL": "https://cdn/"},
			wantOK:     true,
		},
		{
			name:       "missing location",
			descriptor: Descriptor{"name": "Tool"},
			wantFailed: true,
			wantMsg:    "WARNING: file apps/Test.plist is missing installer_item_location",
		},
		{
			name:       "missing location forced",
			descriptor: Descriptor{"name": "Tool"},
			force:      true,
			wantOK:     true,
			wantMsg:    "WARNING: file apps/Test.plist is missing installer_item_location",
		},
		{
			name:       "missing item",
			descriptor: Descriptor{"name": "Tool", "installer_item_location": "apps/Gone.dmg"},
			wantFailed: true,
			wantMsg:    "WARNING: Info file apps/Test.plist refers to missing installer item: apps/Gone.dmg",
		},
		{
			name:       "missing item forced",
			descriptor: Descriptor{"name": "Tool", "installer_item_location": "apps/Gone.dmg"},
			force:      true,
			wantOK:     true,
			wantMsg:    "WARNING: Info file apps/Test.plist refers to missing installer item: apps/Gone.dmg",
		},
		{
			name:       "malformed location never forced",
			descriptor: Descriptor{"name": "Tool", "installer_item_location": int64(42)},
			force:      true,
			wantFailed: true,
			wantMsg:    "WARNING: file apps/Test.plist has an invalid installer_item_location: expected a string, got int64",
		},
		{
			name:       "empty location is malformed",
			descriptor: Descriptor{"name": "Tool", "installer_item_location": ""},
			force:      true,
			wantFailed: true,
			wantMsg:    "WARNING: file apps/Test.plist has an invalid installer_item_location: location is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, rep := validate(t, newRepo(t), Options{Force: tt.force}, tt.descriptor)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFailed, rep.Failed())
			if tt.wantMsg == "" {
				assert.Empty(t, rep.Entries())
			} else {
				assert.Equal(t, []string{tt.wantMsg}, rep.Messages())
			}
		})
	}
}

func TestValidateUninstallerChecks(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		force      bool
		wantOK     bool
		wantFailed bool
		wantMsgs   int
	}{
		{
			name:       "uninstall_package without location",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg", "uninstall_method": "uninstall_package"},
			wantFailed: true,
			wantMsgs:   1,
		},
		{
			name:       "uninstall_package without location forced",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg", "uninstall_method": "uninstall_package"},
			force:      true,
			wantOK:     true,
			wantMsgs:   1,
		},
		{
			name: "uninstall_package with present item",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg",
				"uninstall_method": "uninstall_package", "uninstaller_item_location": "apps/Uninstall.pkg"},
			wantOK: true,
		},
		{
			name: "other method still checks present location",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg",
				"uninstall_method": "removepackages", "uninstaller_item_location": "apps/Missing.pkg"},
			wantFailed: true,
			wantMsgs:   1,
		},
		{
			name: "missing uninstaller item forced",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg",
				"uninstaller_item_location": "apps/Missing.pkg"},
			force:    true,
			wantOK:   true,
			wantMsgs: 1,
		},
		{
			name: "malformed uninstaller location never forced",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg",
				"uninstaller_item_location": []any{"a"}},
			force:      true,
			wantFailed: true,
			wantMsgs:   1,
		},
		{
			name:       "other method without location is fine",
			descriptor: Descriptor{"name": "Tool", "installer_type": "nopkg", "uninstall_method": "removepackages"},
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRepo(t, "apps/Uninstall.pkg")
			_, ok, rep := validate(t, s, Options{Force: tt.force}, tt.descriptor)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFailed, rep.Failed())
			assert.Len(t, rep.Entries(), tt.wantMsgs)
		})
	}
}

func TestValidateSkipPkgCheck(t *testing.T) {
	d := Descriptor{"name": "Tool", "installer_item_location": "apps/Gone.dmg", "uninstaller_item_location": int64(1)}
	_, ok, rep := validate(t, newRepo(t), Options{SkipPkgCheck: true}, d)
	assert.True(t, ok)
	assert.Empty(t, rep.Entries())
}

func TestValidateIconHash(t *testing.T) {
	table := icons.Table{
		"Firefox.png":         "hash-firefox",
		"custom/Tool.png":     "hash-tool",
		"exact-name.icns":     "hash-exact",
		"exact-name.icns.png": "hash-wrong",
	}

	tests := []struct {
		name       string
		descriptor Descriptor
		table      icons.Table
		wantHash   string
		wantAdvice bool
	}{
		{"default name convention", Descriptor{"name": "Firefox"}, table, "hash-firefox", false},
		{"default name missing is silent", Descriptor{"name": "Nothing"}, table, "", false},
		{"icon_name verbatim", Descriptor{"name": "X", "icon_name": "exact-name.icns"}, table, "hash-exact", false},
		{"icon_name with png suffix", Descriptor{"name": "X", "icon_name": "custom/Tool"}, table, "hash-tool", false},
		{"icon_name missing warns", Descriptor{"name": "X", "icon_name": "Nope"}, table, "", true},
		{"icon_name wrong type warns", Descriptor{"name": "X", "icon_name": true}, table, "", true},
		{"hashing disabled", Descriptor{"name": "Firefox"}, nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.descriptor["installer_type"] = "nopkg"
			_, ok, rep := validate(t, newRepo(t), Options{Icons: tt.table}, tt.descriptor)
			require.True(t, ok)
			assert.False(t, rep.Failed(), "icon problems are advisory")

			hash, has := tt.descriptor.String(KeyIconHash)
			if tt.wantHash == "" {
				assert.False(t, has)
			} else {
				assert.Equal(t, tt.wantHash, hash)
			}
			assert.Equal(t, tt.wantAdvice, len(rep.Entries()) > 0)
		})
	}
}

func TestValidateCatalogMemberships(t *testing.T) {
	tests := []struct {
		name       string
		catalogs   any
		want       []string
		wantFailed bool
	}{
		{"absent", nil, nil, false},
		{"plain list", []any{"testing", "production"}, []string{"testing", "production"}, false},
		{"string slice", []string{"testing"}, []string{"testing"}, false},
		{"empty name dropped", []any{"testing", ""}, []string{"testing"}, true},
		{"non-string dropped", []any{int64(3), "production"}, []string{"production"}, true},
		{"duplicates collapse", []any{"testing", "testing"}, []string{"testing"}, false},
		{"all is implicit", []any{"all", "testing"}, []string{"testing"}, false},
		{"not a list", "testing", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{"name": "Tool", "installer_type": "nopkg"}
			if tt.catalogs != nil {
				d["catalogs"] = tt.catalogs
			}
			catalogs, ok, rep := validate(t, newRepo(t), Options{Force: true}, d)
			assert.True(t, ok, "catalog problems never exclude the descriptor from all")
			assert.Equal(t, tt.want, catalogs)
			assert.Equal(t, tt.wantFailed, rep.Failed())
		})
	}
}
