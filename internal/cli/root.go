package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tsinit-dev/tsinit/internal/bootstrap"
	"github.com/tsinit-dev/tsinit/internal/branding"
	"github.com/tsinit-dev/tsinit/internal/config"
	"github.com/tsinit-dev/tsinit/internal/execx"
	"github.com/tsinit-dev/tsinit/internal/gitrepo"
	"github.com/tsinit-dev/tsinit/internal/logging"
	"github.com/tsinit-dev/tsinit/internal/registry"
	"github.com/tsinit-dev/tsinit/internal/templates"
	"go.uber.org/zap"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps a Node.js TypeScript project: tsconfig.json, a package.json
pinned to the latest typescript and @types/node, a git repository with a
.gitignore, and an empty src/index.ts.

With no name, or ".", the current directory is used. Otherwise the name may
only contain letters, numbers, underscores, and hyphens.

Settings live in ~/.tsinit/config.yaml and can be read or saved with
--config-get and --config-set. Each can also be overridden by its
environment variable:
` + describeKeys() + `
Examples:
  tsinit my-app
  tsinit .
  tsinit --config-set resolver=http`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBootstrap,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: none, debug, info, warn, error (default from config)")
}

// newEnv builds the capabilities a bootstrap run uses. Tests replace it.
var newEnv = func(s *config.Settings, logger *zap.Logger) (*bootstrap.Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	fsys := afero.NewOsFs()
	runner := execx.NewOSRunner()

	var resolver registry.Resolver
	switch s.Resolver {
	case config.ResolverHTTP:
		resolver = &registry.HTTPResolver{BaseURL: s.RegistryURL, Timeout: s.RegistryTimeout}
	default:
		resolver = &registry.NPMResolver{Runner: runner, Bin: s.NPMBin, RegistryURL: s.RegistryURL, Timeout: s.RegistryTimeout}
	}

	store := templates.New()
	if s.TemplatesDir != "" {
		store = templates.NewFromDir(s.TemplatesDir)
		if err := store.Require(templates.BuildConfig, templates.PackageManifest); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.KeyTemplatesDir, s.TemplatesDir, err)
		}
	}

	return &bootstrap.Env{
		WorkDir:   wd,
		Fs:        fsys,
		Resolver:  resolver,
		Git:       &gitrepo.Initializer{Runner: runner, Fs: fsys, Bin: s.GitBin},
		Templates: store,
		Logger:    logger,
	}, nil
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	if configRequested() {
		return runConfig(cmd, args)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}

	// Reject bad names before reading config or touching the filesystem.
	if err := bootstrap.ValidateName(name); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	defer func() { _ = logger.Sync() }()

	env, err := newEnv(settings, logger)
	if err != nil {
		return err
	}

	result, err := bootstrap.Run(cmd.Context(), env, name)
	if err != nil {
		logger.Error("bootstrap failed", zap.String("name", name), zap.Error(err))
		return err
	}

	printResult(cmd.OutOrStdout(), env.WorkDir, result)
	return nil
}

func printResult(w io.Writer, workDir string, result *bootstrap.Result) {
	verb := "Initialized"
	if slices.Contains(result.CreatedDirs, result.TargetDir) {
		verb = "Created"
	}
	fmt.Fprintf(w, "%s project %s at %s/\n", verb, result.ProjectName, result.TargetDir)
	for _, f := range result.WrittenFiles {
		fmt.Fprintf(w, "  %s\n", f)
	}

	fmt.Fprintln(w, "\nDependencies:")
	for _, pkg := range bootstrap.Packages {
		fmt.Fprintf(w, "  %s %s\n", pkg, result.Versions[pkg])
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	fmt.Fprintln(w, "\nNext steps:")
	step := 1
	if result.TargetDir != workDir {
		rel, err := filepath.Rel(workDir, result.TargetDir)
		if err != nil {
			rel = result.TargetDir
		}
		fmt.Fprintf(w, "  %d. cd %s\n", step, rel)
		step++
	}
	fmt.Fprintf(w, "  %d. Run 'npm install' to install dependencies\n", step)
	fmt.Fprintf(w, "  %d. Edit src/index.ts and build with 'npm run build'\n", step+1)
}

// reportError writes err for the user. An invalid name is printed as is;
// everything else is prefixed with "Error:".
func reportError(w io.Writer, err error) {
	if errors.Is(err, bootstrap.ErrInvalidName) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// Execute runs the root command with build info injected via ldflags. Errors
// are reported on stderr and returned so main can set the exit code.
func Execute(version, commit, date string) error {
	setBuildInfo(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		return err
	}
	return nil
}
