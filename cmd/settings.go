package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/kconfig"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show firmware settings from the Kconfig file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			settings, err := probeSettings(cfg)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Print(renderSettings(settings))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// probeSettings reads the conf file and probes it. Defaults cover settings
// absent from the file; the file itself must be readable.
func probeSettings(cfg *config.Config) ([]kconfig.Setting, error) {
	path := cfg.Abs(cfg.Paths.Conf)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conf file %s: %w", path, err)
	}
	return kconfig.Probe(string(src)), nil
}

func renderSettings(settings []kconfig.Setting) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SETTING\tVALUE\tNOTES")
	fmt.Fprintln(w, "-------\t-----\t-----")
	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Value, s.Notes)
	}
	w.Flush()
	return b.String()
}

func init() {
	rootCmd.AddCommand(newSettingsCmd())
}
