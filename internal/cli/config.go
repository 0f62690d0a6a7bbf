package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsinit-dev/tsinit/internal/branding"
	"github.com/tsinit-dev/tsinit/internal/config"
)

var knownKeys = map[string]string{
	config.KeyNPMBin:          "npm executable used to query versions",
	config.KeyGitBin:          "git executable used to initialize repositories",
	config.KeyRegistryURL:     "package registry URL (empty uses npm's default)",
	config.KeyResolver:        "version lookup backend: npm or http",
	config.KeyRegistryTimeout: "timeout per version lookup, e.g. 30s (0 disables)",
	config.KeyTemplatesDir:    "directory holding template overrides",
	config.KeyLogLevel:        "none, debug, info, warn, or error",
}

var (
	configGet string
	configSet string
)

func init() {
	rootCmd.Flags().StringVar(&configGet, "config-get", "", "Print a setting and exit")
	rootCmd.Flags().StringVar(&configSet, "config-set", "", "Save a setting as key=value and exit")
	rootCmd.MarkFlagsMutuallyExclusive("config-get", "config-set")
}

func configRequested() bool {
	return configGet != "" || configSet != ""
}

// runConfig handles --config-get and --config-set.
func runConfig(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.New("--config-get and --config-set do not take a project name")
	}
	config.Load()

	if configGet != "" {
		if err := checkKey(configGet); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(configGet))
		return nil
	}

	key, value, ok := strings.Cut(configSet, "=")
	if !ok {
		return fmt.Errorf("--config-set expects key=value, got %q", configSet)
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if err := config.Set(key, value); err != nil {
		return fmt.Errorf("setting config key %q: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func checkKey(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(sortedKeys(), ", "))
	}
	return nil
}

func sortedKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describeKeys lists each setting with the environment variable that
// overrides it.
func describeKeys() string {
	var b strings.Builder
	for _, k := range sortedKeys() {
		fmt.Fprintf(&b, "  %-18s %-25s %s\n", k, branding.EnvVar(k), knownKeys[k])
	}
	return b.String()
}
