package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	var (
		jsonOutput bool
		check      bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				out := struct {
					Version string `json:"version"`
					Commit  string `json:"commit"`
					Date    string `json:"date"`
				}{version.Version, version.Commit, version.Date}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("zmkman %s (%s, built %s)\n",
				versionStyle.Render(version.Version), version.Commit, version.Date)

			if !check {
				return nil
			}
			latest, err := version.NewChecker().Latest(version.Repo)
			if err != nil {
				fmt.Printf("%s update check failed: %v\n", warningStyle.Render("⚠"), err)
				return nil
			}
			newer, err := version.Compare(version.Version, latest)
			if err != nil {
				fmt.Println(faintStyle.Render(fmt.Sprintf("cannot compare %s against %s", version.Version, latest)))
				return nil
			}
			if newer {
				fmt.Println(updateAvailableStyle.Render(fmt.Sprintf("Update available: %s", latest)))
			} else {
				fmt.Println(upToDateStyle.Render("Up to date"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
