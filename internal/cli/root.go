package cli

import (
	"embed"
	"fmt"
	"io"

	"github.com/arthur-debert/makecatalogs/internal/version"
	"github.com/arthur-debert/makecatalogs/pkg/cobrax/topics"
	"github.com/arthur-debert/makecatalogs/pkg/config"
	"github.com/arthur-debert/makecatalogs/pkg/errors"
	"github.com/arthur-debert/makecatalogs/pkg/filesystem"
	"github.com/arthur-debert/makecatalogs/pkg/logging"
	"github.com/arthur-debert/makecatalogs/pkg/makecatalogs"
	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/ui/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// errRunFailed marks a completed run whose report holds failures. Its
// messages were already printed.
var errRunFailed = errors.New(errors.ErrUnknown, "catalog build reported errors")

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity    int
		force        bool
		skipPkgCheck bool
		repoURL      string
		plugin       string
		configFile   string
	)

	rootCmd := &cobra.Command{
		Use:     "makecatalogs [REPO_PATH]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgExample,
		Version: versionString(),
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.LogCommand(cmd.Name(), args)

			explicit := map[string]any{}
			if len(args) == 1 {
				explicit[config.KeyRepoPath] = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("force") {
				explicit[config.KeyForce] = force
			}
			if flags.Changed("skip-pkg-check") {
				explicit[config.KeySkipPkgCheck] = skipPkgCheck
			}
			if flags.Changed("repo_url") {
				explicit[config.KeyRepoURL] = repoURL
			}
			if flags.Changed("plugin") {
				explicit[config.KeyPlugin] = plugin
			}

			cfg, err := config.Resolve(explicit, config.DefaultSource(configFile))
			if err != nil {
				return err
			}
			return runBuild(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	rootCmd.Flags().BoolVarP(&skipPkgCheck, "skip-pkg-check", "s", false, MsgFlagSkipPkgCheck)
	rootCmd.Flags().StringVar(&repoURL, "repo_url", "", MsgFlagRepoURL)
	rootCmd.Flags().StringVar(&plugin, "plugin", filesystem.PluginFileRepo, fmt.Sprintf("%s %v", MsgFlagPlugin, filesystem.Plugins()))
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	// Defining the flag ourselves keeps -v for verbosity; cobra still
	// handles --version because the flag is named "version".
	rootCmd.Flags().BoolP("version", "V", false, MsgFlagVersion)
	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	_, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewMarkdownRenderer(rootCmd.OutOrStdout()),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date)
}

func runBuild(cfg *config.Config, stdout, stderr io.Writer) error {
	logger := logging.GetLogger("cmd.makecatalogs")

	repoRoot, err := cfg.RepoRoot()
	if err != nil {
		return err
	}
	storage, err := filesystem.New(cfg.Plugin)
	if err != nil {
		return err
	}

	result, err := makecatalogs.Run(storage, makecatalogs.Options{
		RepoRoot:     repoRoot,
		Force:        cfg.Force,
		SkipPkgCheck: cfg.SkipPkgCheck,
	}, output.NewPrinter(stdout, stderr))
	if err != nil {
		return err
	}

	for catalog, count := range result.Counts {
		logger.Info().Str("catalog", catalog).Int("count", count).Msg("Catalog built")
	}
	if result.ExitCode() != report.ExitSuccess {
		return errRunFailed
	}
	return nil
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// Execute runs the command and returns the process exit code. Fatal errors
// are printed here; a run that completed with failures already printed its
// messages.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return report.ExitSuccess
	}
	if err != errRunFailed {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgErrPrefix, errorMessage(err))
	}
	return report.ExitFailure
}

// errorMessage strips the error code for display.
func errorMessage(err error) string {
	if e, ok := err.(*errors.Error); ok {
		if e.Wrapped != nil {
			return e.Message + ": " + e.Wrapped.Error()
		}
		return e.Message
	}
	return err.Error()
}
