// Package config locates the ZMK config repo root and loads the optional
// zmkman.toml tool configuration. Every field has a default derived from the
// keyboard name, so a repo without a config file works out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	pelletier "github.com/pelletier/go-toml/v2"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/logging"
)

const (
	// FileName is the tool config file looked up at the repo root.
	FileName = "zmkman.toml"

	// DefaultKeyboard names the keyboard this repo is built around.
	DefaultKeyboard = "offsetkey"
)

// Config is the tool configuration. Paths are relative to the repo root.
type Config struct {
	Keyboard string       `toml:"keyboard" json:"keyboard"`
	Paths    PathsConfig  `toml:"paths" json:"paths"`
	Editor   EditorConfig `toml:"editor" json:"editor"`
	Drawer   DrawerConfig `toml:"drawer" json:"drawer"`
	Git      GitConfig    `toml:"git" json:"git"`

	// Root is the discovered repo root; never read from the file.
	Root string `toml:"-" json:"-"`
}

// PathsConfig overrides the conventional file locations inside the repo.
type PathsConfig struct {
	Keymap         string `toml:"keymap" json:"keymap"`
	Conf           string `toml:"conf" json:"conf"`
	DrawerConfig   string `toml:"drawer_config" json:"drawer_config"`
	PhysicalLayout string `toml:"physical_layout" json:"physical_layout"`
	SVG            string `toml:"svg" json:"svg"`
	YAML           string `toml:"yaml" json:"yaml"`
	Reference      string `toml:"reference" json:"reference"`
}

// EditorConfig pins the editor instead of resolving $EDITOR and PATH.
type EditorConfig struct {
	Command string `toml:"command" json:"command"`
}

// DrawerConfig adjusts how keymap-drawer is invoked.
type DrawerConfig struct {
	Bin string `toml:"bin" json:"bin"`
}

// GitConfig adjusts the commit and push flow.
type GitConfig struct {
	DefaultMessage string `toml:"default_message" json:"default_message"`
}

// Default returns the configuration for a keyboard with no config file.
func Default(keyboard string) *Config {
	cfg := &Config{Keyboard: keyboard}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every empty field from the keyboard name, so a partial
// config file only overrides what it mentions.
func (c *Config) applyDefaults() {
	if c.Keyboard == "" {
		c.Keyboard = DefaultKeyboard
	}
	kb := c.Keyboard
	def := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	def(&c.Paths.Keymap, filepath.Join("config", kb+".keymap"))
	def(&c.Paths.Conf, filepath.Join("config", kb+".conf"))
	def(&c.Paths.DrawerConfig, "keymap_drawer.config.yaml")
	def(&c.Paths.PhysicalLayout, filepath.Join("boards", "shields", kb, kb+"_physical_layout.dtsi"))
	def(&c.Paths.SVG, filepath.Join("keymap-drawer", kb+".svg"))
	def(&c.Paths.YAML, filepath.Join("keymap-drawer", kb+".yaml"))
	def(&c.Paths.Reference, filepath.Join("docs", "zmk-reference.md"))
	def(&c.Drawer.Bin, "keymap")
	def(&c.Git.DefaultMessage, "Update keymap")
}

// Abs resolves a repo-relative path against the discovered root.
func (c *Config) Abs(rel string) string {
	return filepath.Join(c.Root, rel)
}

// File returns the config file path for the root, whether or not it exists.
func (c *Config) File() string {
	return filepath.Join(c.Root, FileName)
}

// Load reads zmkman.toml under root. A missing file yields the defaults;
// unknown keys are warned about and ignored.
func Load(root string) (*Config, error) {
	cfg := &Config{}
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	if err == nil {
		md, derr := toml.Decode(string(data), cfg)
		if derr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, derr)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log := logging.NewLogger("config")
			for _, key := range undecoded {
				log.Warnf("unknown key %q in %s", key.String(), FileName)
			}
		}
	}

	cfg.applyDefaults()
	cfg.Root = root
	return cfg, nil
}

// Save writes the configuration to zmkman.toml at the root.
func (c *Config) Save() error {
	data, err := pelletier.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.File(), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}

// FindRoot walks up from start looking for the repo root: a zmkman.toml, a
// config directory holding a .keymap file, or a git checkout with a config
// directory.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if fileExists(filepath.Join(dir, FileName)) {
			return dir, nil
		}
		if keymaps, _ := filepath.Glob(filepath.Join(dir, "config", "*.keymap")); len(keymaps) > 0 {
			return dir, nil
		}
		if dirExists(filepath.Join(dir, ".git")) && dirExists(filepath.Join(dir, "config")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not inside a ZMK config repo (no %s or config/*.keymap found)", FileName)
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
