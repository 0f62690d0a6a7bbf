// Command copy-templates syncs the *.json template resources into the
// directory the CLI embeds them from. It is invoked by `go generate` and is
// best-effort: copy failures are logged, never fatal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tsinit-dev/tsinit/internal/assets"
	"github.com/tsinit-dev/tsinit/internal/logging"
	"go.uber.org/zap"
)

func main() {
	var from, to, logLevel string

	cmd := &cobra.Command{
		Use:           "copy-templates",
		Short:         "Copy JSON template resources into the embed directory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logLevel)
			if err != nil {
				logger = logging.Must(logging.LevelError)
				logger.Warn("invalid log level, falling back to error", zap.String("level", logLevel))
			}
			defer func() { _ = logger.Sync() }()

			copied := assets.CopyJSON(afero.NewOsFs(), from, to, logger)
			fmt.Fprintf(cmd.OutOrStdout(), "copied %d template(s) from %s to %s\n", len(copied), from, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "templates", "Source directory")
	cmd.Flags().StringVar(&to, "to", "internal/templates/files", "Destination directory")
	cmd.Flags().StringVar(&logLevel, "log-level", logging.LevelError, "Log level (none, debug, info, warn, error)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "copy-templates: %v\n", err)
	}
}
