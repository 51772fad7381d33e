package cmd

import (
	"fmt"
	"strings"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/gitops"
	"github.com/spf13/cobra"
)

func newGitStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show uncommitted changes in the config repo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			changes, err := changedFiles(cfg.Root)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Println(faintStyle.Render("Working tree clean"))
				return nil
			}
			printChanges(changes)
			return nil
		},
	}
}

func changedFiles(root string) ([]gitops.Change, error) {
	return gitops.New(root).Status()
}

func printChanges(changes []gitops.Change) {
	for _, c := range changes {
		color := colorRed
		switch {
		case strings.Contains(c.Code, "A"):
			color = colorGreen
		case strings.Contains(c.Code, "M"):
			color = colorYellow
		}
		fmt.Printf("  %s %s\n", colorize(c.Code, color), c.Path)
	}
}
