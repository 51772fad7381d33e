package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReferenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "Open the ZMK key reference document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ref := cfg.Abs(cfg.Paths.Reference)
			if _, err := os.Stat(ref); err != nil {
				return fmt.Errorf("no reference document at %s", cfg.Paths.Reference)
			}
			return editFile(ref, "", cfg.Editor.Command)
		},
	}
}

func init() {
	rootCmd.AddCommand(newReferenceCmd())
}
