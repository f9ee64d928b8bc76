package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Build catalogs from the pkgsinfo files of a repository"
	MsgGenConfigShort  = "Print the default preference file"
	MsgGenConfigLong   = "Print the default preference file to stdout, with every value commented out.\n\nRedirect the output to the preference file location to customize it."
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce        = "Disable sanity checks: publish items whose installer or uninstaller items are missing"
	MsgFlagSkipPkgCheck = "Skip checking that installer and uninstaller items exist in pkgs"
	MsgFlagRepoURL      = "Repository URL (file:///path); used when no REPO_PATH is given"
	MsgFlagPlugin       = "Repository storage plugin"
	MsgFlagConfig       = "Preference file (default $XDG_CONFIG_HOME/makecatalogs/config.toml)"
	MsgFlagVersion      = "Print the version and exit"

	// Error messages
	MsgErrPrefix = "ERROR: %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimRight(msgExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
