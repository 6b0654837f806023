package tree

import (
	"fmt"

	"github.com/codalotl/docview/internal/value"
)

// LineKind is the shape of a rendered Line.
type LineKind int

const (
	LineLeaf      LineKind = iota // A primitive: "label: value", or just "value" at the root.
	LineOpen                      // An open container's header: "label: {" or "label: [".
	LineClose                     // The closing bracket of an open container.
	LineCollapsed                 // A closed container: "label: {N keys}" or "label: [N items]".
)

// Line is one row of the flattened, visible tree.
type Line struct {
	Kind     LineKind
	Path     string
	Depth    int
	Label    string
	HasLabel bool
	Value    value.Value // The primitive for leaves; the container otherwise.
	Summary  string      // "N items" or "N keys" for LineCollapsed.
}

// Brackets returns the opening and closing brackets for a container line, or empty strings for a leaf.
func (l Line) Brackets() (string, string) {
	switch l.Value.Kind() {
	case value.Array:
		return "[", "]"
	case value.Object:
		return "{", "}"
	}
	return "", ""
}

// Summary describes a closed container: "N items" for arrays and "N keys" for objects.
func Summary(v value.Value) string {
	if v.Kind() == value.Array {
		return fmt.Sprintf("%d items", v.Len())
	}
	return fmt.Sprintf("%d keys", v.Len())
}

// Lines flattens the visible tree in display order. Containers seen for the first time are constructed with default state.
func (s *Session) Lines() []Line {
	var lines []Line
	var visit func(v value.Value, path, label string, hasLabel bool, depth int)
	visit = func(v value.Value, path, label string, hasLabel bool, depth int) {
		if !v.IsContainer() {
			lines = append(lines, Line{Kind: LineLeaf, Path: path, Depth: depth, Label: label, HasLabel: hasLabel, Value: v})
			return
		}
		n := s.node(v, path, label, hasLabel, depth)
		if !n.Open {
			lines = append(lines, Line{Kind: LineCollapsed, Path: path, Depth: depth, Label: label, HasLabel: hasLabel, Value: v, Summary: Summary(v)})
			return
		}
		lines = append(lines, Line{Kind: LineOpen, Path: path, Depth: depth, Label: label, HasLabel: hasLabel, Value: v})
		eachChild(v, func(childLabel string, child value.Value) {
			visit(child, value.AppendPointer(path, childLabel), childLabel, true, depth+1)
		})
		lines = append(lines, Line{Kind: LineClose, Path: path, Depth: depth, Value: v})
	}
	visit(s.doc, "", "", false, 0)
	return lines
}
