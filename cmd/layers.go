package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/keymap"
	"github.com/spf13/cobra"
)

func newLayersCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List layers and combos defined in the keymap",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			layers, combos, err := extractKeymap(cfg.Abs(cfg.Paths.Keymap))
			if err != nil {
				return err
			}

			if jsonOutput {
				out := struct {
					Layers []keymap.Layer `json:"layers"`
					Combos []keymap.Combo `json:"combos"`
				}{layers, combos}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(layers) == 0 {
				fmt.Printf("%s No layers found in keymap\n", warningStyle.Render("⚠"))
				return nil
			}
			fmt.Print(renderLayers(layers, combos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// extractKeymap reads the keymap file and pulls out layers and combos.
// A missing or unreadable file is a hard error.
func extractKeymap(path string) ([]keymap.Layer, []keymap.Combo, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read keymap file %s: %w", path, err)
	}
	layers, err := keymap.ExtractLayers(string(src))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse keymap: %w", err)
	}
	return layers, keymap.ExtractCombos(string(src)), nil
}

func renderLayers(layers []keymap.Layer, combos []keymap.Combo) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tNODE\tKEYS")
	fmt.Fprintln(w, "-----\t----\t----\t----")
	for _, l := range layers {
		node := l.NodeName
		if node == l.DisplayName {
			node = ""
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", l.Index, l.DisplayName, node, l.KeyCount)
	}
	w.Flush()

	if len(combos) > 0 {
		b.WriteString("\n")
		w = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COMBO\tKEYS\tACTION")
		fmt.Fprintln(w, "-----\t----\t------")
		for _, c := range combos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.KeyPositions, c.Action)
		}
		w.Flush()
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(newLayersCmd())
}
