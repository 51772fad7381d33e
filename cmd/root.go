package cmd

import (
	"fmt"
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagDir     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "zmkman",
	Short:         "Manage the Offsetkey ZMK keyboard configuration",
	Long:          "zmkman inspects, edits, draws, and ships the Offsetkey ZMK config without leaving the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logging.SetVerbose()
		}
		log := logging.NewLogger("cli")
		cmd.Flags().Visit(func(f *pflag.Flag) {
			log.Debugf("flag %s=%s", f.Name, f.Value.String())
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation on a terminal opens the interactive menu.
		if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
			return runMenu()
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "config repo directory (default: walk up from cwd)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)
		return err
	}
	return nil
}

// loadConfig locates the config repo and loads zmkman.toml from it.
func loadConfig() (*config.Config, error) {
	start := flagDir
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		start = cwd
	}
	root, err := config.FindRoot(start)
	if err != nil {
		return nil, err
	}
	return config.Load(root)
}
