package diff

import "strings"

// Line is one numbered line of a column.
type Line struct {
	Number  int    // 1-based, column-local, no gaps.
	Text    string // Without the trailing newline.
	Changed bool   // Removed (left column) or added (right column).
}

// Columns is a side-by-side layout of a diff. Left and Right are numbered independently.
type Columns struct {
	Left  []Line
	Right []Line
}

// Align lays runs out as two columns. The left column takes every run that is not RunAdded; the right column takes every run that is not RunRemoved. Each run's text
// is split on "\n" and each piece becomes a Line, except that a trailing empty piece (the run's final newline) is dropped. Empty runs contribute nothing.
func Align(runs []Run) Columns {
	var cols Columns
	leftNum, rightNum := 1, 1
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		lines := strings.Split(r.Text, defaultEOL)
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		changed := r.Kind != RunUnchanged
		for _, text := range lines {
			if r.Kind != RunAdded {
				cols.Left = append(cols.Left, Line{Number: leftNum, Text: text, Changed: changed})
				leftNum++
			}
			if r.Kind != RunRemoved {
				cols.Right = append(cols.Right, Line{Number: rightNum, Text: text, Changed: changed})
				rightNum++
			}
		}
	}
	return cols
}
