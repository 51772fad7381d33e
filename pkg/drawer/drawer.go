// Package drawer drives keymap-drawer, the external tool that renders a
// keymap into an SVG diagram. Generation is a two-step subprocess pipeline:
// parse the ZMK keymap into an intermediate YAML, then draw the SVG from it.
package drawer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/logging"
)

// Pipeline holds the resolved paths for one generation run.
type Pipeline struct {
	root    string
	bin     string
	config  string
	keymap  string
	layout  string
	yamlOut string
	svgOut  string
	log     *logrus.Entry
}

// Result reports where the pipeline wrote its outputs.
type Result struct {
	YAML string
	SVG  string
	// Layers lists the layer names keymap-drawer recognized, in file
	// order. Nil when the intermediate YAML could not be inspected.
	Layers []string
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		root:    cfg.Root,
		bin:     cfg.Drawer.Bin,
		config:  cfg.Abs(cfg.Paths.DrawerConfig),
		keymap:  cfg.Abs(cfg.Paths.Keymap),
		layout:  cfg.Abs(cfg.Paths.PhysicalLayout),
		yamlOut: cfg.Abs(cfg.Paths.YAML),
		svgOut:  cfg.Abs(cfg.Paths.SVG),
		log:     logging.NewLogger("drawer"),
	}
}

// Generate runs the pipeline and writes both outputs into the repo. The -c
// config flag is global for keymap-drawer, so it goes before the subcommand;
// the physical layout is passed to draw only when the file exists.
func (p *Pipeline) Generate() (*Result, error) {
	if _, err := exec.LookPath(p.bin); err != nil {
		return nil, fmt.Errorf("%q not found. Install with: pipx install keymap-drawer", p.bin)
	}

	parseOut, err := p.run("-c", p.config, "parse", "-z", p.keymap)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.yamlOut), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(p.yamlOut, parseOut, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.yamlOut, err)
	}

	drawArgs := []string{"-c", p.config, "draw"}
	if info, err := os.Stat(p.layout); err == nil && !info.IsDir() {
		drawArgs = append(drawArgs, "-d", p.layout)
	}
	drawArgs = append(drawArgs, p.yamlOut)

	svgOut, err := p.run(drawArgs...)
	if err != nil {
		return nil, fmt.Errorf("draw failed: %w", err)
	}
	if err := os.WriteFile(p.svgOut, svgOut, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.svgOut, err)
	}

	names, nerr := LayerNames(parseOut)
	if nerr != nil {
		p.log.WithError(nerr).Debug("drawer output not inspectable")
	}
	return &Result{YAML: p.yamlOut, SVG: p.svgOut, Layers: names}, nil
}

func (p *Pipeline) run(args ...string) ([]byte, error) {
	cmd := exec.Command(p.bin, args...)
	cmd.Dir = p.root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	p.log.WithField("args", strings.Join(args, " ")).Debug("running keymap-drawer")
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// LayerNames lists the layer names in keymap-drawer parse output, keeping
// the file order. A document without a layers mapping yields nil.
func LayerNames(data []byte) ([]string, error) {
	var doc struct {
		Layers yaml.Node `yaml:"layers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse drawer output: %w", err)
	}
	if doc.Layers.Kind != yaml.MappingNode {
		return nil, nil
	}
	names := make([]string, 0, len(doc.Layers.Content)/2)
	for i := 0; i+1 < len(doc.Layers.Content); i += 2 {
		names = append(names, doc.Layers.Content[i].Value)
	}
	return names, nil
}
