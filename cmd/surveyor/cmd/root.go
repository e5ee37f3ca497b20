// Package cmd defines the surveyor command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btrdirectory/surveyor/internal/config"
)

// rootOptions hold flags shared by every subcommand.
type rootOptions struct {
	outputDir   string
	sourcesPath string
}

// NewRootCommand creates the surveyor root command.
func NewRootCommand(version, commit string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "surveyor",
		Short: "Discover and verify Build to Rent developments",
		Long: `Surveyor keeps the BTR Directory accurate. The discover command
searches the web for developments not yet in the directory; the verify
command re-checks stored listings against fresh web evidence. Both
write CSV reports, text summaries, and optional SQL suggestion files
for human review. Surveyor never writes to the database itself.`,
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.outputDir, "output-dir", "output",
		"Directory for reports and SQL files")
	cmd.PersistentFlags().StringVar(&opts.sourcesPath, "sources", "sources.yaml",
		"Path to the optional sources file")

	cmd.AddCommand(newDiscoverCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))

	return cmd
}

// loadConfig loads runtime configuration and the optional sources
// file.
func (o *rootOptions) loadConfig() (*config.Config, *config.Sources, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	srcs, err := config.LoadSources(o.sourcesPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, srcs, nil
}
