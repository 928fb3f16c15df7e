package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/buildinfo"
	"github.com/utrgv-dp/roadmap/pkg/config"
)

// rootOptions carries flags shared by every command.
type rootOptions struct {
	configPath string
}

// loadConfig resolves the effective configuration for a command.
func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}

// Execute runs the roadmap CLI. The logger is attached to the command
// context and accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "roadmap",
		Short:        "Roadmap serves and edits academic degree roadmaps",
		Long:         `Roadmap is a web application and CLI for academic degree roadmaps: semester-by-semester course tables rendered as row-spanned HTML, editable in place, and exportable to PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("roadmap %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (TOML)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newBrowseCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newCacheCmd(opts))

	return root.ExecuteContext(ctx)
}
