package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codalotl/docview/internal/diff"
	"github.com/codalotl/docview/internal/highlight"
)

const (
	diffSeparator    = " │ "
	minDiffTextWidth = 8

	// NoDifferences is the footer of a diff between identical documents.
	NoDifferences = "No differences"
)

// Diff renders c as two columns, the left (old) document and the right (new) one, each with a right-aligned line number gutter. Changed lines are styled as removed
// on the left and added on the right; without color they are marked with "-" and "+" instead. Lines are truncated to fit the terminal width. If either title is
// non-empty, a header row names the columns. Identical documents end with a "No differences" row; a failed comparison renders only its error.
func (t *Terminal) Diff(c diff.Comparison, leftTitle, rightTitle string) string {
	if c.Err != nil {
		return t.errText.Render("Comparison failed: "+c.Err.Error()) + "\n"
	}

	left, right := c.Columns.Left, c.Columns.Right
	rows := max(len(left), len(right))
	numWidth := len(strconv.Itoa(max(rows, 1)))
	gutter := numWidth + 3 // number, space, marker, space
	textWidth := max((t.width-TextWidth(diffSeparator))/2-gutter, minDiffTextWidth)

	var b strings.Builder
	if leftTitle != "" || rightTitle != "" {
		b.WriteString(Fit(cellText(leftTitle), gutter+textWidth))
		b.WriteString(diffSeparator)
		b.WriteString(Truncate(cellText(rightTitle), gutter+textWidth))
		b.WriteByte('\n')
	}
	for i := 0; i < rows; i++ {
		b.WriteString(t.diffCell(left, i, numWidth, textWidth, "-", t.removed, true))
		b.WriteString(diffSeparator)
		b.WriteString(strings.TrimRight(t.diffCell(right, i, numWidth, textWidth, "+", t.added, false), " "))
		b.WriteByte('\n')
	}
	if c.Identical {
		b.WriteString(t.muted.Render(NoDifferences))
		b.WriteByte('\n')
	}
	return b.String()
}

// diffCell renders row i of a column. Rows past the end of the column are blank.
func (t *Terminal) diffCell(lines []diff.Line, i, numWidth, textWidth int, marker string, style lipgloss.Style, pad bool) string {
	if i >= len(lines) {
		if !pad {
			return ""
		}
		return strings.Repeat(" ", numWidth+3+textWidth)
	}
	ln := lines[i]
	if !ln.Changed || t.color {
		marker = " "
	}
	text := Truncate(cellText(ln.Text), textWidth)
	if pad {
		text = Pad(text, textWidth)
	}
	if ln.Changed {
		text = style.Render(text)
		marker = style.Render(marker)
	}
	return fmt.Sprintf("%*d %s %s", numWidth, ln.Number, marker, text)
}

// cellText makes a line safe for a fixed-width cell: tabs expand to four spaces and other control characters become visible.
func cellText(s string) string {
	return strings.ReplaceAll(highlight.Sanitize(s, 4), "\r", `\r`)
}
