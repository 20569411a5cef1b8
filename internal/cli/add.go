package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pbxpatch/internal/diff"
	"pbxpatch/internal/registrar"
)

var addDryRun bool

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Discover new files and register them in the descriptor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegistration(addDryRun)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the descriptor edit as a unified diff without writing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegistration(true)
	},
}

func init() {
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false,
		"stage the edit and print a diff instead of writing the descriptor")
}

func runRegistration(dryRun bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := registrar.Run(cfg, registrar.Options{
		DryRun: dryRun,
		Out:    os.Stdout,
		Errw:   os.Stderr,
	})
	if err != nil {
		return err
	}
	if dryRun {
		body, derr := diff.Unified("a/"+cfg.Descriptor, "b/"+cfg.Descriptor, res.Before, res.After, diff.Options{})
		if derr != nil {
			return fmt.Errorf("rendering diff: %w", derr)
		}
		if body == "" {
			fmt.Println("No changes.")
			return nil
		}
		fmt.Print(body)
	}
	return nil
}
