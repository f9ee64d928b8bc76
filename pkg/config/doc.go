// Package config resolves makecatalogs' run configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. the preference file ($XDG_CONFIG_HOME/makecatalogs/config.toml)
//  3. MAKECATALOGS_* environment variables
//  4. flags given explicitly on the command line
//
// Resolve is the only entry point; the pipeline receives the resulting
// Config and never consults preferences itself.
package config
