// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wikimirror/internal/config"
)

var (
	// Global flags
	configPath string
	mirrorName string

	// Resolved values
	cfg                *config.Config
	resolvedConfigPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wikimirror",
	Short: "Mirror Redmine wiki pages into a local directory",
	Long: `Wikimirror keeps a local directory of text files in sync with the wiki
of a single Redmine project. The mirror is strictly one-way: Redmine is the
source of truth, local files are created, updated, or removed to match it,
and nothing is ever pushed back.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	var loadedCfg *config.Config
	var err error

	path := config.DefaultPath()
	if strings.TrimSpace(configPath) != "" {
		path = configPath
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, path, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&mirrorName, "mirror", "m", "", "Named mirror from config")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}
