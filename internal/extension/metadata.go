// Package extension describes block metadata exposed to the editor:
// opcodes, argument shapes, and the dynamic "markers" menu builder.
package extension

import "strconv"

// BlockType classifies how a block renders and connects in the editor.
type BlockType string

const (
	BlockTypeCommand  BlockType = "COMMAND"
	BlockTypeReporter BlockType = "REPORTER"
	BlockTypeBoolean  BlockType = "BOOLEAN"
	BlockTypeHat      BlockType = "HAT"
)

// ArgType is the primitive shape of a block argument.
type ArgType string

const (
	ArgNumber ArgType = "NUMBER"
	ArgString ArgType = "STRING"
)

// ArgSpec describes one placeholder argument in a block's text template.
type ArgSpec struct {
	Type         ArgType
	Menu         string // name of a Menu in Extension.Menus, or ""
	DefaultValue string
}

// BlockDescriptor is one script-visible block.
type BlockDescriptor struct {
	Opcode    string
	BlockType BlockType
	Text      string // template with [PLACEHOLDERS]
	Arguments map[string]ArgSpec
}

// MenuEntry is one choice in a dropdown menu.
type MenuEntry struct {
	Text  string
	Value string
}

// Menu is either a static list of entries or a dynamic builder keyed
// by the currently selected target id.
type Menu struct {
	Static  []MenuEntry
	Dynamic func(targetID string) []MenuEntry
}

// Extension is the metadata package the host exposes to the editor
// for one extension.
type Extension struct {
	ID     string
	Name   string
	Blocks []BlockDescriptor
	Menus  map[string]Menu
}

// MarkerSource resolves a target's trim range and ordered markers for
// the dynamic markers-menu builder. Both video.Target and audio.Target
// can satisfy this via a thin adapter in internal/runtime.
type MarkerSource interface {
	TrimStart() float64
	TrimEnd() float64
	MarkerValues() []float64
}

// MarkersMenu builds the dynamic "markers" menu entries for targetID:
// a synthesized "start" (trimStart), one numbered entry per marker,
// and a synthesized "end" (trimEnd). If targetID does not resolve, it
// returns a single "n/a" placeholder entry.
func MarkersMenu(lookup func(targetID string) (MarkerSource, bool)) func(targetID string) []MenuEntry {
	return func(targetID string) []MenuEntry {
		src, ok := lookup(targetID)
		if !ok {
			return []MenuEntry{{Text: "n/a", Value: "0"}}
		}

		entries := make([]MenuEntry, 0, len(src.MarkerValues())+2)
		entries = append(entries, MenuEntry{Text: "start", Value: formatValue(src.TrimStart())})
		for i, m := range src.MarkerValues() {
			entries = append(entries, MenuEntry{Text: markerLabel(i), Value: formatValue(m)})
		}
		entries = append(entries, MenuEntry{Text: "end", Value: formatValue(src.TrimEnd())})
		return entries
	}
}

// markerLabel is the 1-indexed, script-visible number for the i'th marker.
func markerLabel(i int) string {
	return strconv.Itoa(i + 1)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
