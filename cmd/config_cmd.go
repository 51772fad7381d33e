package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zmkman.toml",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default zmkman.toml into the repo",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := flagDir
			if root == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				// Prefer the repo root when we are inside one.
				if found, err := config.FindRoot(cwd); err == nil {
					root = found
				} else {
					root = cwd
				}
			}

			cfg := config.Default(config.DefaultKeyboard)
			cfg.Root = root
			if _, err := os.Stat(cfg.File()); err == nil && !force {
				return fmt.Errorf("%s already exists, pass --force to overwrite", cfg.File())
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Printf("%s Wrote %s\n", successStyle.Render("✓"), cfg.File())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing zmkman.toml")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the active zmkman.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(cfg.File())
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}
