package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tacogips/ignite/internal/app"
	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/debug"
	"github.com/tacogips/ignite/internal/pm"
	"github.com/tacogips/ignite/internal/process"
	"github.com/tacogips/ignite/internal/template/provider"
	"github.com/tacogips/ignite/internal/vcs"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalConfig  string
)

// Scaffold flags
var (
	scaffoldCwd            string
	scaffoldTemplate       string
	scaffoldInstall        bool
	scaffoldGitInit        bool
	scaffoldPackageManager string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ignite [dir]",
	Short: "Scaffold a new project from a template",
	Long: `ignite creates a new project from a registry template.

It resolves the project path, template and package manager from flags or
interactive prompts, then:
  1. Downloads the template into the project directory
  2. Optionally installs dependencies with the chosen package manager
  3. Optionally initializes a git repository

The project directory must not exist yet.

Examples:
  ignite
  ignite my-app -t nuxt3 --packageManager pnpm --install --gitInit
  ignite my-app --install=false --gitInit=false`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug || envEnabled(DebugEnv))
		debug.SetNoColor(globalNoColor)
		applyColorSetting()
	},
	RunE: runScaffold,
}

// Execute runs the root command and exits with the code mapped from the
// returned error. This is the only place the process exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(err)
		os.Exit(app.ExitCode(err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)

	// Scaffold flags
	rootCmd.Flags().StringVar(&scaffoldCwd, FlagCwd, ".", DescCwd)
	rootCmd.Flags().StringVarP(&scaffoldTemplate, FlagTemplate, "t", "", DescTemplate)
	rootCmd.Flags().BoolVar(&scaffoldInstall, FlagInstall, false, DescInstall)
	rootCmd.Flags().BoolVar(&scaffoldGitInit, FlagGitInit, false, DescGitInit)
	rootCmd.Flags().StringVar(&scaffoldPackageManager, FlagPackageManager, "", DescPackageManager)

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the file named by --config, or the default file if present.
func loadConfig() (*config.Config, error) {
	if globalConfig != "" {
		return config.Load(globalConfig, true)
	}
	return config.Load(config.DefaultConfigPath(), false)
}

// settingsFromFlags builds RunSettings. Toggles stay nil unless the flag was
// given, so an explicit false is distinguished from "ask me".
func settingsFromFlags(cmd *cobra.Command, args []string) *app.RunSettings {
	settings := &app.RunSettings{
		WorkingDirectory: scaffoldCwd,
		TemplateName:     scaffoldTemplate,
		PackageManager:   pm.Name(scaffoldPackageManager),
	}
	if len(args) > 0 {
		settings.ProjectPath = args[0]
	}
	if cmd.Flags().Changed(FlagInstall) {
		settings.Install = app.Bool(scaffoldInstall)
	}
	if cmd.Flags().Changed(FlagGitInit) {
		settings.GitInit = app.Bool(scaffoldGitInit)
	}
	return settings
}

// newScaffolder wires the orchestrator to the real collaborators.
func newScaffolder(cfg *config.Config, prompter app.Prompter) (*app.Scaffolder, error) {
	runner := process.NewExecRunner()

	git, err := vcs.New(cfg.Git.Backend, runner)
	if err != nil {
		return nil, err
	}

	providerConfig := provider.ProviderConfig{
		ArchiveURL: cfg.GitHub.ArchiveURL,
		Timeout:    time.Duration(cfg.GitHub.Timeout) * time.Second,
		DefaultRef: cfg.GitHub.DefaultRef,
	}
	if !provider.IsLocalPath(cfg.Registry) {
		providerConfig.GitHubToken = getGitHubToken(cfg)
	}

	reporter := consoleReporter{}
	return &app.Scaffolder{
		Registry: cfg.Registry,
		Resolver: &app.InputResolver{
			Prompter:           prompter,
			Reporter:           reporter,
			DefaultProjectPath: cfg.DefaultProjectPath,
			Templates:          cfg.Templates,
			Getenv:             os.Getenv,
		},
		Downloader: provider.NewDownloader(providerConfig),
		Installer:  pm.NewInstaller(runner),
		Git:        git,
		Reporter:   reporter,
	}, nil
}

// newPrompter is replaced in tests.
var newPrompter = func() app.Prompter { return SurveyPrompter{} }

func runScaffold(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	debug.DebugValue("[cli] Registry", cfg.Registry)

	settings := settingsFromFlags(cmd, args)

	scaffolder, err := newScaffolder(cfg, newPrompter())
	if err != nil {
		return err
	}

	result, err := scaffolder.Run(cmd.Context(), settings)
	if err != nil {
		return err
	}

	printSummary(result)
	return nil
}
