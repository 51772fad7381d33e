package cmd

import (
	"fmt"
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/browser"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/drawer"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/gitops"
	"github.com/spf13/cobra"
)

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open keymap artifacts in the default application",
	}
	cmd.AddCommand(newOpenSVGCmd())
	cmd.AddCommand(newOpenActionsCmd())
	return cmd
}

func newOpenSVGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "svg",
		Short: "Open the drawn keymap SVG, rendering it first if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			svg := cfg.Abs(cfg.Paths.SVG)
			if _, err := os.Stat(svg); os.IsNotExist(err) {
				fmt.Printf("%s No drawing yet, running keymap-drawer...\n", infoStyle.Render("→"))
				if _, err := drawer.New(cfg).Generate(); err != nil {
					return err
				}
			}

			if err := browser.Open(svg); err != nil {
				return fmt.Errorf("failed to open %s: %w", cfg.Paths.SVG, err)
			}
			fmt.Printf("%s Opened %s\n", successStyle.Render("✓"), cfg.Paths.SVG)
			return nil
		},
	}
}

func newOpenActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "Open the GitHub Actions page for this repo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			url, err := gitops.New(cfg.Root).ActionsURL()
			if err != nil {
				return err
			}
			if err := browser.Open(url); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
			fmt.Printf("%s Opened %s\n", successStyle.Render("✓"), url)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newOpenCmd())
}
