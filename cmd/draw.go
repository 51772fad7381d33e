package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/drawer"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/keymap"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/logging"
	"github.com/spf13/cobra"
)

func newDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Render the keymap to SVG with keymap-drawer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("%s Running keymap-drawer...\n", infoStyle.Render("→"))
			res, err := drawer.New(cfg).Generate()
			if err != nil {
				return err
			}
			fmt.Print(renderDrawReport(cfg, res))
			return nil
		},
	}
}

// renderDrawReport lists the written outputs, then warns when the drawing
// does not cover every keymap layer.
func renderDrawReport(cfg *config.Config, res *drawer.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Wrote %s\n", successStyle.Render("✓"), cfg.Paths.YAML)
	fmt.Fprintf(&b, "%s Wrote %s\n", successStyle.Render("✓"), cfg.Paths.SVG)
	if warn := layerDriftWarning(cfg.Abs(cfg.Paths.Keymap), res); warn != "" {
		b.WriteString(warn + "\n")
	}
	return b.String()
}

// layerDriftWarning compares the keymap's layer count against what
// keymap-drawer recognized; a mismatch usually means keymap-drawer choked on
// part of the file. Nil Layers means the intermediate YAML was not
// inspectable, while an empty slice is a real zero-layer drawing and is
// compared like any other count.
func layerDriftWarning(keymapPath string, res *drawer.Result) string {
	log := logging.NewLogger("draw")
	if res.Layers == nil {
		return ""
	}
	src, err := os.ReadFile(keymapPath)
	if err != nil {
		log.Debugf("skipping layer comparison: %v", err)
		return ""
	}
	layers, err := keymap.ExtractLayers(string(src))
	if err != nil {
		log.Debugf("skipping layer comparison: %v", err)
		return ""
	}
	if len(layers) != len(res.Layers) {
		return fmt.Sprintf("%s keymap defines %d layers but the drawing has %d",
			warningStyle.Render("⚠"), len(layers), len(res.Layers))
	}
	return ""
}

func init() {
	rootCmd.AddCommand(newDrawCmd())
}
