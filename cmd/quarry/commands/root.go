package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrydata/quarry/internal/config"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Quarry - machine-learning dataset catalog and loader",
	Long: `Quarry is a catalog and loader for machine-learning datasets.
It downloads dataset archives, indexes their files into tables, and
offers splitting, merging, and summarization utilities over them.

Datasets are registered by name per kind (such as image-classification)
and materialized on demand; computed summaries are cached locally so
bulk summaries can run in a quick, cache-only mode.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to quarry.yml (optional)")
}

// loadConfig returns the file configuration when --config is given,
// defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
