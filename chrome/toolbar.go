// Package chrome holds the viewport's surrounding UI models: the toolbar
// definition, the document title field and panel styling. These are plain
// state models; drawing them is the host application's concern.
package chrome

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Tool is a single toolbar action.
type Tool struct {
	ID       string `toml:"id"`
	Label    string `toml:"label"`
	Icon     string `toml:"icon,omitempty"`
	Shortcut string `toml:"shortcut,omitempty"`
}

// ToolGroup is a named cluster of tools separated from its neighbors.
type ToolGroup struct {
	Name  string `toml:"name"`
	Tools []Tool `toml:"tools"`
}

// Toolbar is the full toolbar definition.
type Toolbar struct {
	Groups []ToolGroup `toml:"groups"`
}

// LoadToolbar reads a toolbar definition from a TOML file.
func LoadToolbar(path string) (*Toolbar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading toolbar config: %w", err)
	}
	return ParseToolbar(data)
}

// ParseToolbar decodes and validates a TOML toolbar definition.
func ParseToolbar(data []byte) (*Toolbar, error) {
	var tb Toolbar
	if err := toml.Unmarshal(data, &tb); err != nil {
		return nil, fmt.Errorf("parsing toolbar config: %w", err)
	}
	if err := tb.validate(); err != nil {
		return nil, err
	}
	return &tb, nil
}

func (tb *Toolbar) validate() error {
	seen := make(map[string]struct{})
	for _, g := range tb.Groups {
		for _, tool := range g.Tools {
			if tool.ID == "" {
				return fmt.Errorf("toolbar group %q has a tool with no id", g.Name)
			}
			if _, dup := seen[tool.ID]; dup {
				return fmt.Errorf("duplicate tool id %q", tool.ID)
			}
			seen[tool.ID] = struct{}{}
		}
	}
	return nil
}

// Find returns the tool with the given id.
func (tb *Toolbar) Find(id string) (Tool, bool) {
	for _, g := range tb.Groups {
		for _, tool := range g.Tools {
			if tool.ID == id {
				return tool, true
			}
		}
	}
	return Tool{}, false
}

// DefaultToolbar is the built-in definition used when no config file is
// supplied.
func DefaultToolbar() *Toolbar {
	return &Toolbar{Groups: []ToolGroup{
		{Name: "transform", Tools: []Tool{
			{ID: "select", Label: "Select", Shortcut: "Q"},
			{ID: "move", Label: "Move", Shortcut: "W"},
			{ID: "rotate", Label: "Rotate", Shortcut: "E"},
			{ID: "scale", Label: "Scale", Shortcut: "R"},
		}},
		{Name: "model", Tools: []Tool{
			{ID: "extrude", Label: "Extrude", Shortcut: "X"},
			{ID: "inset", Label: "Inset", Shortcut: "I"},
			{ID: "loop-cut", Label: "Loop Cut", Shortcut: "C"},
		}},
		{Name: "view", Tools: []Tool{
			{ID: "frame-selection", Label: "Frame Selection", Shortcut: "F"},
			{ID: "toggle-grid", Label: "Toggle Grid", Shortcut: "G"},
		}},
	}}
}
