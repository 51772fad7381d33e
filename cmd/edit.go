package cmd

import (
	"fmt"
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/editor"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit config files in your editor",
	}
	cmd.AddCommand(newEditKeymapCmd())
	cmd.AddCommand(newEditConfCmd())
	return cmd
}

func newEditKeymapCmd() *cobra.Command {
	var noReference bool

	cmd := &cobra.Command{
		Use:   "keymap",
		Short: "Edit the keymap, with the key reference in a split",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return editFile(cfg.Abs(cfg.Paths.Keymap), referencePath(cfg, !noReference), cfg.Editor.Command)
		},
	}

	cmd.Flags().BoolVar(&noReference, "no-reference", false, "do not open the key reference alongside")
	return cmd
}

func newEditConfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conf",
		Short: "Edit the firmware settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return editFile(cfg.Abs(cfg.Paths.Conf), "", cfg.Editor.Command)
		},
	}
}

// editFile opens target in the resolved editor, prepending reference in a
// split when the editor supports it. Editors without splits get the
// reference path printed instead.
func editFile(target, reference, override string) error {
	ed := editor.Resolve(override)
	op := editor.Plan(ed, target, reference)
	if reference != "" && !op.SplitReference {
		fmt.Printf("%s Reference file: %s\n", infoStyle.Render("→"), reference)
	}
	if err := op.Cmd().Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", ed, err)
	}
	return nil
}

// referencePath returns the reference doc path when wanted and present on disk.
func referencePath(cfg *config.Config, wanted bool) string {
	if !wanted {
		return ""
	}
	ref := cfg.Abs(cfg.Paths.Reference)
	if _, err := os.Stat(ref); err != nil {
		return ""
	}
	return ref
}

func init() {
	rootCmd.AddCommand(newEditCmd())
}
