package render

import (
	"strings"

	"github.com/codalotl/docview/internal/tree"
	"github.com/codalotl/docview/internal/value"
)

// Tree markers for open and closed containers.
const (
	MarkerOpen   = "▾"
	MarkerClosed = "▸"
)

// Tree renders lines (from tree.Session.Lines) one per row, each ending in a newline. Rows are indented two spaces per depth; containers start with a marker and
// leaves are indented to line up with container labels. Labels and primitive values show search matches.
func (t *Terminal) Tree(lines []tree.Line, search string) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(t.TreeLine(ln, search))
		b.WriteByte('\n')
	}
	return b.String()
}

// TreeLine renders one tree row without a trailing newline.
func (t *Terminal) TreeLine(ln tree.Line, search string) string {
	indent := strings.Repeat("  ", ln.Depth)
	open, close := ln.Brackets()
	switch ln.Kind {
	case tree.LineOpen:
		return indent + MarkerOpen + " " + t.label(ln, search) + open
	case tree.LineClose:
		return indent + "  " + close
	case tree.LineCollapsed:
		return indent + MarkerClosed + " " + t.label(ln, search) + open + t.muted.Render(ln.Summary) + close
	}
	return indent + "  " + t.label(ln, search) + t.leaf(ln.Value, search)
}

func (t *Terminal) label(ln tree.Line, search string) string {
	if !ln.HasLabel {
		return ""
	}
	return t.styled(t.key, ln.Label, search) + ": "
}

func (t *Terminal) leaf(v value.Value, search string) string {
	switch v.Kind() {
	case value.String:
		return t.str.Render(`"`) + t.styled(t.str, v.Str(), search) + t.str.Render(`"`)
	case value.Number:
		return t.styled(t.num, v.NumberText(), search)
	}
	return t.styled(t.lit, v.Text(), search)
}
