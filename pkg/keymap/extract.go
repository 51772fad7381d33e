// Package keymap extracts layer and combo declarations from ZMK keymap
// source text. Recognition is pattern-based rather than a full devicetree
// grammar: block matching tolerates one level of brace nesting, and any
// construct that does not fit the expected shape is skipped instead of
// failing the parse. Callers own file I/O and decide how to present empty
// results.
package keymap

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// bindingSigil prefixes every behavior reference inside a bindings list
// (&kp, &mt, &trans, ...). Key counting means counting these tokens.
const bindingSigil = "&"

var (
	// #define NAME 0 style layer index macros, collected document-wide.
	defineRe = regexp.MustCompile(`#define\s+(\w+)\s+(\d+)`)

	// The keymap container is identified by its compatible property. The
	// capture runs to the end of the document; node matching below stops
	// at blocks that do not fit the one-level nesting shape.
	keymapRegionRe = regexp.MustCompile(`(?s)keymap\s*\{[^}]*compatible\s*=\s*"zmk,keymap"\s*;(.+)`)

	// name { body } with body allowing nested property blocks one level deep.
	nodeBlockRe = regexp.MustCompile(`(?s)(\w+)\s*\{((?:[^{}]|\{[^{}]*\})*)\}`)

	bindingsRe     = regexp.MustCompile(`(?s)bindings\s*=\s*<([^>]+)>`)
	labelRe        = regexp.MustCompile(`label\s*=\s*"([^"]+)"`)
	bindingTokenRe = regexp.MustCompile(bindingSigil + `\w+`)

	// The combos container region ends at the first line holding only the
	// closing "};". Combo entries written one per line keep their braces
	// inside the region.
	combosRegionRe = regexp.MustCompile(`(?s)combos\s*\{[^}]*compatible\s*=\s*"zmk,combos"\s*;(.+?)\n\s*\};`)
	comboBlockRe   = regexp.MustCompile(`(?s)(\w+)\s*\{([^{}]*)\}`)
	keyPositionsRe = regexp.MustCompile(`(?s)key-positions\s*=\s*<([^>]+)>`)
)

// Layer is one keymap layer assembled from a node block inside the keymap
// container.
type Layer struct {
	// NodeName is the devicetree node identifier of the layer block.
	NodeName string `json:"node_name"`
	// Label is the optional quoted label property; empty when absent.
	Label string `json:"label,omitempty"`
	// DisplayName is Label when set, otherwise NodeName.
	DisplayName string `json:"display_name"`
	// Index is the layer's resolved position: a #define matching
	// DisplayName, else one matching NodeName, else discovery order.
	Index int `json:"index"`
	// KeyCount is the number of behavior references in the bindings list.
	KeyCount int `json:"key_count"`
}

// Combo is one combo declaration. KeyPositions and Action stay raw text;
// they are display values, not parsed structures.
type Combo struct {
	Name         string `json:"name"`
	KeyPositions string `json:"key_positions"`
	Action       string `json:"action"`
}

// symbolTable maps #define names to their integer values. Later definitions
// overwrite earlier ones; no check ties a define to an actual layer, so two
// layers can legitimately resolve to the same index.
type symbolTable map[string]int

func buildSymbolTable(src string) (symbolTable, error) {
	defs := make(symbolTable)
	for _, m := range defineRe.FindAllStringSubmatch(src, -1) {
		v, err := strconv.Atoi(m[2])
		if err != nil {
			// Digit-only pattern: the only way here is overflow.
			return nil, fmt.Errorf("define %s: %w", m[1], err)
		}
		defs[m[1]] = v
	}
	return defs, nil
}

// ExtractLayers parses layer declarations from keymap source text.
//
// The result is sorted by Index, ascending and stable, so layers sharing an
// index keep their document order. A document without a keymap container, or
// whose container holds no bindings blocks, yields an empty slice and a nil
// error: absence is a valid state that callers report as "no layers found".
// The only failure is a #define value that overflows int.
func ExtractLayers(src string) ([]Layer, error) {
	defs, err := buildSymbolTable(src)
	if err != nil {
		return nil, err
	}

	layers := []Layer{}
	region := keymapRegionRe.FindStringSubmatch(src)
	if region == nil {
		return layers, nil
	}

	for _, block := range nodeBlockRe.FindAllStringSubmatch(region[1], -1) {
		node, body := block[1], block[2]

		// Behavior and sensor nodes inside the container have no
		// bindings list; skip them.
		if !strings.Contains(body, "bindings") {
			continue
		}
		bindings := bindingsRe.FindStringSubmatch(body)
		if bindings == nil {
			continue
		}

		label := ""
		if m := labelRe.FindStringSubmatch(body); m != nil {
			label = m[1]
		}
		display := label
		if display == "" {
			display = node
		}

		index, ok := defs[display]
		if !ok {
			index, ok = defs[node]
		}
		if !ok {
			index = len(layers) // discovery order among accepted layers
		}

		layers = append(layers, Layer{
			NodeName:    node,
			Label:       label,
			DisplayName: display,
			Index:       index,
			KeyCount:    len(bindingTokenRe.FindAllString(bindings[1], -1)),
		})
	}

	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Index < layers[j].Index })
	return layers, nil
}

// ExtractCombos parses combo declarations from keymap source text, in
// document order. It operates on the whole document independently of
// ExtractLayers: a file with combos but no keymap container still yields
// its combos. A document without a combos container yields an empty slice.
func ExtractCombos(src string) []Combo {
	combos := []Combo{}
	region := combosRegionRe.FindStringSubmatch(src)
	if region == nil {
		return combos
	}

	for _, block := range comboBlockRe.FindAllStringSubmatch(region[1], -1) {
		// bindings and key-positions may appear in either order; both
		// are required, anything else in the body is ignored.
		action := bindingsRe.FindStringSubmatch(block[2])
		positions := keyPositionsRe.FindStringSubmatch(block[2])
		if action == nil || positions == nil {
			continue
		}
		combos = append(combos, Combo{
			Name:         block[1],
			KeyPositions: strings.TrimSpace(positions[1]),
			Action:       strings.TrimSpace(action[1]),
		})
	}
	return combos
}
