package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/model"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a usable renderer it returns the markdown unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Outline writes the document held by m as a markdown outline: the mission as a
// heading and every other node as a nested list item tagged with its kind label and path.
func Outline(m *model.Model) string {
	var sb strings.Builder

	mission, err := m.Index(0, model.ColumnComponent, model.Index{})
	if err != nil {
		return "_no document loaded_\n"
	}
	fmt.Fprintf(&sb, "# %s\n\n", m.Data(mission, model.EditRole))

	var walk func(parent model.Index, depth int, path string)
	walk = func(parent model.Index, depth int, path string) {
		for row := 0; row < m.RowCount(parent); row++ {
			idx, err := m.Index(row, model.ColumnComponent, parent)
			if err != nil {
				continue
			}
			d, err := m.Descriptor(idx)
			if err != nil {
				continue
			}
			p := fmt.Sprintf("%s/%d", path, row)
			fmt.Fprintf(&sb, "%s- **%s** _%s_ `%s`\n", strings.Repeat("  ", depth), d.DisplayName, d.KindLabel, p)
			walk(idx, depth+1, p)
		}
	}
	walk(mission, 0, "/0")

	if m.RowCount(mission) == 0 {
		sb.WriteString("_empty mission_\n")
	}
	return sb.String()
}
