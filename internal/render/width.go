package render

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// widthCondition measures for a non-East Asian locale; ambiguous-width runes and emoji presentation count as narrow.
var widthCondition = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	return cond
}()

// TextWidth returns the number of monospace terminal columns s occupies.
func TextWidth(s string) int {
	return widthCondition.StringWidth(s)
}

// Truncate shortens s to at most width columns, cutting on grapheme cluster boundaries and ending with "…" if anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if TextWidth(s) <= width {
		return s
	}
	limit := width - TextWidth(ellipsis)
	var b strings.Builder
	w := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		g := iter.Value()
		gw := widthCondition.StringWidth(g)
		if w+gw > limit {
			break
		}
		b.WriteString(g)
		w += gw
	}
	b.WriteString(ellipsis)
	return b.String()
}

// Pad right-pads s with spaces to width columns. Wider strings are returned unchanged.
func Pad(s string, width int) string {
	if w := TextWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Fit truncates then pads s to exactly width columns.
func Fit(s string, width int) string {
	return Pad(Truncate(s, width), width)
}
