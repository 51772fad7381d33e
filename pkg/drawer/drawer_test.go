package drawer_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/drawer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerNames(t *testing.T) {
	t.Run("OrderedNames", func(t *testing.T) {
		data := []byte(`
layout: {zmk_keyboard: offsetkey}
layers:
  BASE:
    - [Q, W, E]
  NAV:
    - [HOME, UP, END]
  SYM:
    - ['!', '@', '#']
`)
		names, err := drawer.LayerNames(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"BASE", "NAV", "SYM"}, names)
	})

	t.Run("NoLayersMapping", func(t *testing.T) {
		names, err := drawer.LayerNames([]byte("layout: {}\n"))
		require.NoError(t, err)
		assert.Nil(t, names)
	})

	t.Run("EmptyMapping", func(t *testing.T) {
		// An empty mapping is a drawing with zero layers, not an
		// uninspectable document, so the result is empty but non-nil.
		names, err := drawer.LayerNames([]byte("layers: {}\n"))
		require.NoError(t, err)
		require.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := drawer.LayerNames([]byte("layers: [unclosed\n"))
		assert.Error(t, err)
	})
}

// stubDrawer installs a fake keymap-drawer binary that prints YAML for
// parse and SVG for draw, recording its argv for inspection.
func stubDrawer(t *testing.T, dir string, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub binaries need a POSIX shell")
	}
	err := os.WriteFile(filepath.Join(dir, "keymap"), []byte(script), 0o755)
	require.NoError(t, err)
}

func testRepo(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "offsetkey.keymap"), []byte("/ { };\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "keymap_drawer.config.yaml"), []byte("draw_config: {}\n"), 0o644))
	cfg, err := config.Load(root)
	require.NoError(t, err)
	return cfg
}

func TestGenerate(t *testing.T) {
	t.Run("WritesYAMLAndSVG", func(t *testing.T) {
		cfg := testRepo(t)
		binDir := t.TempDir()
		stubDrawer(t, binDir, `#!/bin/sh
if [ "$3" = "parse" ]; then
  printf 'layers:\n  BASE: []\n  NAV: []\n'
elif [ "$3" = "draw" ]; then
  printf '<svg></svg>'
fi
`)
		t.Setenv("PATH", binDir)

		res, err := drawer.New(cfg).Generate()
		require.NoError(t, err)

		yamlData, err := os.ReadFile(res.YAML)
		require.NoError(t, err)
		assert.Contains(t, string(yamlData), "BASE")

		svgData, err := os.ReadFile(res.SVG)
		require.NoError(t, err)
		assert.Equal(t, "<svg></svg>", string(svgData))

		assert.Equal(t, []string{"BASE", "NAV"}, res.Layers)
	})

	t.Run("ParseFailureCarriesStderr", func(t *testing.T) {
		cfg := testRepo(t)
		binDir := t.TempDir()
		stubDrawer(t, binDir, `#!/bin/sh
echo "bad keymap syntax" >&2
exit 1
`)
		t.Setenv("PATH", binDir)

		_, err := drawer.New(cfg).Generate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse failed")
		assert.Contains(t, err.Error(), "bad keymap syntax")
	})

	t.Run("MissingBinarySuggestsInstall", func(t *testing.T) {
		cfg := testRepo(t)
		t.Setenv("PATH", t.TempDir())

		_, err := drawer.New(cfg).Generate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pipx install keymap-drawer")
	})

	t.Run("PhysicalLayoutFlagWhenPresent", func(t *testing.T) {
		cfg := testRepo(t)
		layoutDir := filepath.Join(cfg.Root, "boards", "shields", "offsetkey")
		require.NoError(t, os.MkdirAll(layoutDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(layoutDir, "offsetkey_physical_layout.dtsi"), []byte("/ { };\n"), 0o644))

		binDir := t.TempDir()
		argsFile := filepath.Join(t.TempDir(), "args")
		stubDrawer(t, binDir, `#!/bin/sh
if [ "$3" = "draw" ]; then
  echo "$@" >> `+argsFile+`
fi
printf 'layers: {}\n'
`)
		t.Setenv("PATH", binDir)

		_, err := drawer.New(cfg).Generate()
		require.NoError(t, err)

		recorded, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Contains(t, string(recorded), "-d "+filepath.Join(cfg.Root, "boards", "shields", "offsetkey", "offsetkey_physical_layout.dtsi"))
	})
}
