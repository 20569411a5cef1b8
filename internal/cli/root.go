// Package cli defines the Cobra command tree for pbxpatch.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pbxpatch/internal/config"
)

var (
	cfgPath string
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "pbxpatch",
	Short: "Register new source and resource files in an Xcode project descriptor",
	Long: `pbxpatch edits a project.pbxproj in place, adding the file references,
build-file registrations, group children, and build-phase memberships
for files discovered under the configured directories. The descriptor
is treated as opaque text; only the four anchored regions change.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI and terminates the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"path to pbxpatch.yaml (default: ./pbxpatch.yaml or $PBXPATCH_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"project root overriding the configured one (also $PBXPATCH_ROOT)")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(planCmd)
}

// loadConfig resolves the run configuration: explicit flag, then the
// PBXPATCH_CONFIG environment variable, then ./pbxpatch.yaml, finally
// the built-in defaults when no file exists.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("PBXPATCH_CONFIG")
	}
	explicit := path != ""
	if path == "" {
		path = config.DefaultFile
	}
	var cfg *config.Config
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.Read(path)
		if err != nil {
			return nil, err
		}
	}
	if rootDir != "" {
		cfg.Root = rootDir
	} else if env := os.Getenv("PBXPATCH_ROOT"); env != "" {
		cfg.Root = env
	}
	return cfg, nil
}
