package keymap_test

import (
	"testing"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLayers(t *testing.T) {
	t.Run("NoKeymapContainer", func(t *testing.T) {
		layers, err := keymap.ExtractLayers("#define BASE 0\n/ { behaviors { }; };\n")
		require.NoError(t, err)
		assert.Empty(t, layers)
	})

	t.Run("ContainerWithoutBindingsBlocks", func(t *testing.T) {
		src := `
/ {
    keymap {
        compatible = "zmk,keymap";
        sensors { status = "okay"; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		assert.Empty(t, layers)
	})

	t.Run("SingleLabeledLayer", func(t *testing.T) {
		src := `
#define BASE 0

/ {
    keymap {
        compatible = "zmk,keymap";

        base {
            bindings = <&kp A &kp B &trans>;
            label = "Base";
        };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, keymap.Layer{
			NodeName:    "base",
			Label:       "Base",
			DisplayName: "Base",
			Index:       0,
			KeyCount:    3,
		}, layers[0])
	})

	t.Run("LabelWinsDisplayName", func(t *testing.T) {
		src := `
/ {
    keymap {
        compatible = "zmk,keymap";
        lower_layer {
            label = "Lower";
            bindings = <&kp N1>;
        };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, "Lower", layers[0].DisplayName)
		assert.Equal(t, "lower_layer", layers[0].NodeName)
	})

	t.Run("DefineOnDisplayNameOverridesDiscoveryOrder", func(t *testing.T) {
		src := `
#define NAV 5

/ {
    keymap {
        compatible = "zmk,keymap";
        nav_layer {
            label = "NAV";
            bindings = <&kp A>;
        };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, 5, layers[0].Index)
	})

	t.Run("DisplayNameLookupBeatsNodeName", func(t *testing.T) {
		src := `
#define NAV 5
#define nav_layer 2

/ {
    keymap {
        compatible = "zmk,keymap";
        nav_layer {
            label = "NAV";
            bindings = <&kp A>;
        };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, 5, layers[0].Index)
	})

	t.Run("NodeNameLookupWhenLabelUnknown", func(t *testing.T) {
		src := `
#define raise_layer 3

/ {
    keymap {
        compatible = "zmk,keymap";
        raise_layer {
            label = "Raise";
            bindings = <&kp A>;
        };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, 3, layers[0].Index)
	})

	t.Run("DiscoveryOrderFallback", func(t *testing.T) {
		src := `
/ {
    keymap {
        compatible = "zmk,keymap";
        alpha { bindings = <&kp A>; };
        beta { bindings = <&kp B>; };
        gamma { bindings = <&kp C>; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 3)
		for i, name := range []string{"alpha", "beta", "gamma"} {
			assert.Equal(t, name, layers[i].NodeName)
			assert.Equal(t, i, layers[i].Index)
		}
	})

	t.Run("SortedByIndexWithGaps", func(t *testing.T) {
		src := `
#define FIRST 0
#define LAST 9

/ {
    keymap {
        compatible = "zmk,keymap";
        last { label = "LAST"; bindings = <&kp A>; };
        first { label = "FIRST"; bindings = <&kp B>; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 2)
		assert.Equal(t, "first", layers[0].NodeName)
		assert.Equal(t, 0, layers[0].Index)
		assert.Equal(t, "last", layers[1].NodeName)
		assert.Equal(t, 9, layers[1].Index)
	})

	t.Run("StableSortOnDuplicateIndex", func(t *testing.T) {
		// Two layers resolving to the same index keep document order.
		src := `
#define ONE 1
#define ALSO_ONE 1

/ {
    keymap {
        compatible = "zmk,keymap";
        second { label = "ALSO_ONE"; bindings = <&kp A>; };
        third { label = "ONE"; bindings = <&kp B>; };
        zeroth { bindings = <&kp C>; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 3)
		// zeroth has no define and falls back to discovery index 2,
		// sorting after the two index-1 layers.
		assert.Equal(t, "second", layers[0].NodeName)
		assert.Equal(t, "third", layers[1].NodeName)
		assert.Equal(t, "zeroth", layers[2].NodeName)
		assert.Equal(t, layers[0].Index, layers[1].Index)
	})

	t.Run("LastDefineWins", func(t *testing.T) {
		src := `
#define BASE 0
#define BASE 7

/ {
    keymap {
        compatible = "zmk,keymap";
        base { label = "BASE"; bindings = <&kp A>; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, 7, layers[0].Index)
	})

	t.Run("KeyCountIgnoresFormatting", func(t *testing.T) {
		compact := `
/ {
    keymap {
        compatible = "zmk,keymap";
        base { bindings = <&kp A &mt LSHIFT B &trans &none>; };
    };
};
`
		spread := `
/ {
    keymap {
        compatible = "zmk,keymap";
        base {
            bindings = <
                &kp A    &mt LSHIFT B
                &trans
                &none
            >;
        };
    };
};
`
		a, err := keymap.ExtractLayers(compact)
		require.NoError(t, err)
		b, err := keymap.ExtractLayers(spread)
		require.NoError(t, err)
		require.Len(t, a, 1)
		require.Len(t, b, 1)
		assert.Equal(t, 4, a[0].KeyCount)
		assert.Equal(t, a[0].KeyCount, b[0].KeyCount)
	})

	t.Run("UnterminatedBindingsSkipsBlock", func(t *testing.T) {
		src := `
/ {
    keymap {
        compatible = "zmk,keymap";
        broken { bindings = &kp A; };
        good { bindings = <&kp B>; };
    };
};
`
		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		require.Len(t, layers, 1)
		assert.Equal(t, "good", layers[0].NodeName)
	})

	t.Run("DefineValueOverflow", func(t *testing.T) {
		src := "#define HUGE 99999999999999999999\n" + `
/ {
    keymap {
        compatible = "zmk,keymap";
        base { bindings = <&kp A>; };
    };
};
`
		_, err := keymap.ExtractLayers(src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HUGE")
	})
}

func TestExtractCombos(t *testing.T) {
	t.Run("NoCombosContainer", func(t *testing.T) {
		combos := keymap.ExtractCombos(`/ { keymap { compatible = "zmk,keymap"; }; };`)
		assert.Empty(t, combos)
	})

	t.Run("SingleCombo", func(t *testing.T) {
		src := `
/ {
    combos {
        compatible = "zmk,combos";
        esc_combo { bindings = <&kp ESC>; key-positions = <0 1>; };
    };
};
`
		combos := keymap.ExtractCombos(src)
		require.Len(t, combos, 1)
		assert.Equal(t, keymap.Combo{
			Name:         "esc_combo",
			KeyPositions: "0 1",
			Action:       "&kp ESC",
		}, combos[0])
	})

	t.Run("DocumentOrderPreserved", func(t *testing.T) {
		src := `
/ {
    combos {
        compatible = "zmk,combos";
        tab_combo { bindings = <&kp TAB>; key-positions = <10 11>; };
        esc_combo { bindings = <&kp ESC>; key-positions = <0 1>; };
    };
};
`
		combos := keymap.ExtractCombos(src)
		require.Len(t, combos, 2)
		assert.Equal(t, "tab_combo", combos[0].Name)
		assert.Equal(t, "esc_combo", combos[1].Name)
	})

	t.Run("ClauseOrderIndependent", func(t *testing.T) {
		src := `
/ {
    combos {
        compatible = "zmk,combos";
        caps_combo { key-positions = <20 21>; timeout-ms = <50>; bindings = <&caps_word>; };
    };
};
`
		combos := keymap.ExtractCombos(src)
		require.Len(t, combos, 1)
		assert.Equal(t, "20 21", combos[0].KeyPositions)
		assert.Equal(t, "&caps_word", combos[0].Action)
	})

	t.Run("MissingClauseSkipsCombo", func(t *testing.T) {
		src := `
/ {
    combos {
        compatible = "zmk,combos";
        no_positions { bindings = <&kp ESC>; };
        complete { bindings = <&kp TAB>; key-positions = <2 3>; };
    };
};
`
		combos := keymap.ExtractCombos(src)
		require.Len(t, combos, 1)
		assert.Equal(t, "complete", combos[0].Name)
	})

	t.Run("IndependentOfKeymapContainer", func(t *testing.T) {
		src := `
/ {
    combos {
        compatible = "zmk,combos";
        esc_combo { bindings = <&kp ESC>; key-positions = <0 1>; };
    };
};
`
		combos := keymap.ExtractCombos(src)
		require.Len(t, combos, 1)

		layers, err := keymap.ExtractLayers(src)
		require.NoError(t, err)
		assert.Empty(t, layers)
	})
}

// offsetkeySample mirrors the structure of a real split-keyboard keymap:
// defines, a behaviors container, single-line combo entries, then the keymap
// container with labeled layers.
const offsetkeySample = `
#define BASE 0
#define NAV 1
#define SYM 2

/ {
    behaviors {
        hm: homerow_mod {
            compatible = "zmk,behavior-hold-tap";
            tapping-term-ms = <200>;
        };
    };

    combos {
        compatible = "zmk,combos";
        combo_esc { bindings = <&kp ESC>; key-positions = <0 1>; };
        combo_caps { bindings = <&caps_word>; key-positions = <16 19>; };
    };

    keymap {
        compatible = "zmk,keymap";

        base_layer {
            label = "BASE";
            bindings = <
                &kp Q &kp W &kp E &kp R &kp T
                &kp A &kp S &kp D &kp F &kp G
                &mt LSHIFT Z &kp X &kp C &kp V &kp B
            >;
        };

        nav_layer {
            label = "NAV";
            bindings = <
                &kp HOME &kp UP &kp END &none &trans
                &kp LEFT &kp DOWN &kp RIGHT &trans &trans
            >;
        };

        sym_layer {
            label = "SYM";
            bindings = <&kp EXCL &kp AT &kp HASH &trans &trans>;
        };
    };
};
`

func TestExtractRealisticKeymap(t *testing.T) {
	layers, err := keymap.ExtractLayers(offsetkeySample)
	require.NoError(t, err)
	require.Len(t, layers, 3)

	assert.Equal(t, "BASE", layers[0].DisplayName)
	assert.Equal(t, "base_layer", layers[0].NodeName)
	assert.Equal(t, 0, layers[0].Index)
	assert.Equal(t, 15, layers[0].KeyCount)

	assert.Equal(t, "NAV", layers[1].DisplayName)
	assert.Equal(t, 1, layers[1].Index)
	assert.Equal(t, 10, layers[1].KeyCount)

	assert.Equal(t, "SYM", layers[2].DisplayName)
	assert.Equal(t, 2, layers[2].Index)
	assert.Equal(t, 5, layers[2].KeyCount)

	combos := keymap.ExtractCombos(offsetkeySample)
	require.Len(t, combos, 2)
	assert.Equal(t, "combo_esc", combos[0].Name)
	assert.Equal(t, "0 1", combos[0].KeyPositions)
	assert.Equal(t, "&kp ESC", combos[0].Action)
	assert.Equal(t, "combo_caps", combos[1].Name)
	assert.Equal(t, "&caps_word", combos[1].Action)
}

func TestExtractIdempotence(t *testing.T) {
	first, err := keymap.ExtractLayers(offsetkeySample)
	require.NoError(t, err)
	second, err := keymap.ExtractLayers(offsetkeySample)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, keymap.ExtractCombos(offsetkeySample), keymap.ExtractCombos(offsetkeySample))
}
