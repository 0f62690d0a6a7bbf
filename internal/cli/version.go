package cli

import (
	"fmt"

	"github.com/tsinit-dev/tsinit/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// setBuildInfo records build metadata and exposes it through --version.
// The root command takes a project name as its only argument, so version
// output is a flag rather than a subcommand.
func setBuildInfo(version, commit, date string) {
	buildVersion, buildCommit, buildDate = version, commit, date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}} (commit: %s, built: %s)\n",
		branding.CLIName(), commit, date))
}
