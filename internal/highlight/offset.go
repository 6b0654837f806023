package highlight

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location is a 1-based line and column, typically reported by a parser.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Offset converts loc into a rune offset into text:
//
//	offset = sum(len(line_i) + 1 for i in [0, loc.Line-2]) + (loc.Column - 1)
//
// Lines end at "\n" or "\r\n"; the "+1" counts one terminator rune per line either way. loc.Line is clamped to the lines that exist, loc.Column to at least 1, and the
// result to [0, runeCount(text)].
func Offset(text string, loc Location) int {
	lines := splitLines(text)
	line := min(max(loc.Line, 1), len(lines))
	col := max(loc.Column, 1)

	idx := 0
	for i := 0; i < line-1; i++ {
		idx += utf8.RuneCountInString(lines[i]) + 1
	}
	idx += col - 1

	return min(max(idx, 0), utf8.RuneCountInString(text))
}

// splitLines splits on "\n", dropping a "\r" before each "\n". It always returns at least one line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
