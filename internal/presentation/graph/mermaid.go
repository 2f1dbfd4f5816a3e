package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
)

// GraphOverlay contains state data to highlight on the graph.
type GraphOverlay struct {
	// Changed holds the paths reported by a document diff.
	Changed [][]int
	// Current is the path of the selected node, if any.
	Current []int
}

// GenerateMermaid produces a Mermaid flowchart of the document held by m.
// It applies semantic shapes:
// - Mission: ((Circle))
// - Device: [[Subroutine]]
// - Rail/Segment: [/Parallelogram/]
// - Point: (Rounded)
// - Collection: [Rectangle], labelled with its interpretation
// Points of a line hang from it with dotted edges.
func GenerateMermaid(m *model.Model, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var walk func(parent model.Index, parentID string, parentKind domain.Kind, path []int)
	walk = func(parent model.Index, parentID string, parentKind domain.Kind, path []int) {
		for row := 0; row < m.RowCount(parent); row++ {
			idx, err := m.Index(row, model.ColumnComponent, parent)
			if err != nil {
				continue
			}
			childPath := append(append([]int(nil), path...), row)
			id := nodeID(childPath)
			sb.WriteString(fmt.Sprintf("    %s\n", shape(m, idx, id)))

			if parentID != "" {
				arrow := "-->"
				if parentKind.IsLine() {
					arrow = "-.->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", parentID, arrow, id))
			}
			walk(idx, id, m.Kind(idx), childPath)
		}
	}
	walk(model.Index{}, "", domain.KindUndefined, nil)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef changed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, p := range overlay.Changed {
			// The mission sits at row 0 under the root.
			id := nodeID(append([]int{0}, p...))
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s changed;\n", id))
			}
		}
		if overlay.Current != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String()
}

func shape(m *model.Model, idx model.Index, id string) string {
	d, err := m.Descriptor(idx)
	if err != nil {
		return id
	}
	label := escape(d.DisplayName)
	switch d.Kind {
	case domain.KindMission:
		return fmt.Sprintf("%s((\"%s\"))", id, label)
	case domain.KindDevice:
		return fmt.Sprintf("%s[[\"%s\"]]", id, label)
	case domain.KindRail, domain.KindSegment:
		return fmt.Sprintf("%s[/\"%s <br/> %s\"/]", id, label, d.KindLabel)
	case domain.KindPoint:
		return fmt.Sprintf("%s(\"%s\")", id, label)
	default:
		return fmt.Sprintf("%s[\"%s <br/> %s\"]", id, label, d.KindLabel)
	}
}

// nodeID names a node by its path from the root, e.g. n0_1_2.
func nodeID(path []int) string {
	parts := make([]string, len(path))
	for i, r := range path {
		parts[i] = strconv.Itoa(r)
	}
	return "n" + strings.Join(parts, "_")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
