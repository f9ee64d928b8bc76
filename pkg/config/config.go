package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Preference keys.
const (
	KeyRepoPath     = "repo_path"
	KeyRepoURL      = "repo_url"
	KeyPlugin       = "plugin"
	KeyForce        = "force"
	KeySkipPkgCheck = "skip_pkg_check"
)

// EnvPrefix is the prefix of environment variables read by DefaultSource.
const EnvPrefix = "MAKECATALOGS_"

// Config is the resolved configuration for one run.
type Config struct {
	RepoPath     string `koanf:"repo_path" toml:"repo_path" comment:"Local path to the repository root."`
	RepoURL      string `koanf:"repo_url" toml:"repo_url" comment:"Repository URL, used when repo_path is empty (file:///path)."`
	Plugin       string `koanf:"plugin" toml:"plugin" comment:"Storage plugin: FileRepo or MemoryRepo."`
	Force        bool   `koanf:"force" toml:"force" comment:"Publish descriptors whose installer items are missing."`
	SkipPkgCheck bool   `koanf:"skip_pkg_check" toml:"skip_pkg_check" comment:"Skip installer and uninstaller item checks."`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Plugin: "FileRepo",
	}
}

// Source describes where stored preferences come from.
type Source struct {
	// File is the TOML preference file. A file that does not exist is skipped.
	File string
	// EnvPrefix selects environment variables. Empty disables them.
	EnvPrefix string
}

// DefaultSource returns the standard preference locations. A non-empty
// path overrides the preference file.
func DefaultSource(path string) Source {
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "makecatalogs", "config.toml")
	}
	return Source{File: path, EnvPrefix: EnvPrefix}
}

// Resolve merges defaults, stored preferences and explicit values. explicit
// holds only the flags the user actually set, keyed by preference key.
//
// repo_path and repo_url name the same thing, so the higher layer decides
// between them: a repo_url from a higher layer clears a repo_path from a
// lower one. Within one layer repo_path wins.
func Resolve(explicit map[string]any, src Source) (*Config, error) {
	k := koanf.New(".")
	urlWins := false

	merge := func(layer *koanf.Koanf) error {
		switch {
		case layer.String(KeyRepoPath) != "":
			urlWins = false
		case layer.String(KeyRepoURL) != "":
			urlWins = true
		}
		return k.Merge(layer)
	}

	layer := koanf.New(".")
	if err := layer.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	if err := merge(layer); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if src.File != "" {
		if _, err := os.Stat(src.File); err == nil {
			layer := koanf.New(".")
			if err := layer.Load(file.Provider(src.File), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load preferences from %s", src.File).
					WithDetail("path", src.File)
			}
			if err := merge(layer); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load preferences from %s", src.File).
					WithDetail("path", src.File)
			}
		}
	}

	if src.EnvPrefix != "" {
		prefix := src.EnvPrefix
		layer := koanf.New(".")
		err := layer.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil)
		if err == nil {
			err = merge(layer)
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	if len(explicit) > 0 {
		layer := koanf.New(".")
		err := layer.Load(confmap.Provider(explicit, "."), nil)
		if err == nil {
			err = merge(layer)
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}
	if urlWins {
		cfg.RepoPath = ""
	}
	return &cfg, nil
}

func defaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		KeyRepoPath:     d.RepoPath,
		KeyRepoURL:      d.RepoURL,
		KeyPlugin:       d.Plugin,
		KeyForce:        d.Force,
		KeySkipPkgCheck: d.SkipPkgCheck,
	}
}

// RepoRoot returns the repository root: repo_path when set, otherwise the
// path of a file:// repo_url.
func (c *Config) RepoRoot() (string, error) {
	if c.RepoPath != "" {
		return expandHome(c.RepoPath), nil
	}
	if c.RepoURL == "" {
		return "", errors.New(errors.ErrConfigInvalid, "no repository specified: pass a repo path or set repo_path")
	}

	u, err := url.Parse(c.RepoURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "invalid repo_url %q", c.RepoURL)
	}
	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return "", errors.Newf(errors.ErrConfigInvalid, "repo_url %q has no path", c.RepoURL)
		}
		return u.Path, nil
	case "":
		return expandHome(c.RepoURL), nil
	default:
		return "", errors.Newf(errors.ErrConfigInvalid, "repo_url scheme %q is not supported", u.Scheme).
			WithDetail("repo_url", c.RepoURL)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
