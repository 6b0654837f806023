package diff

import (
	"fmt"
	"strings"
)

// Colors (ANSI). Applied only when rendering with color.
const (
	ansiReset    = "\x1b[0m"
	ansiRed      = "\x1b[31m"
	ansiGreen    = "\x1b[32m"
	ansiMagenta  = "\x1b[35m"
	ansiCyanBold = "\x1b[1;36m"
)

type unifiedLine struct {
	tag     byte // ' ', '+', '-'
	text    string
	oldLine int // 1-based line in the old text before which (or at which) this line sits.
	newLine int
}

// RenderUnified returns a unified diff of d with "--- from" / "+++ to" headers and "@@ -a,b +c,d @@" hunk headers. If color, the output includes ANSI color markers.
//
// contextSize controls how many unchanged lines are shown before and after each group of changes. Two change groups separated by at most 2*contextSize unchanged
// lines are merged into a single hunk. If d has no changes, only the headers are returned.
func (d Diff) RenderUnified(color bool, fromFilename string, toFilename string, contextSize int) string {
	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + ansiReset
	}
	if contextSize < 0 {
		contextSize = 0
	}

	// Flatten runs into tagged lines with positions in both texts.
	var lines []unifiedLine
	oldPos, newPos := 1, 1
	for _, r := range d.Runs() {
		for _, ln := range splitPreserveEOL(r.Text, defaultEOL) {
			core, _ := trimEOL(ln, defaultEOL)
			switch r.Kind {
			case RunUnchanged:
				lines = append(lines, unifiedLine{tag: ' ', text: core, oldLine: oldPos, newLine: newPos})
				oldPos++
				newPos++
			case RunRemoved:
				lines = append(lines, unifiedLine{tag: '-', text: core, oldLine: oldPos, newLine: newPos})
				oldPos++
			case RunAdded:
				lines = append(lines, unifiedLine{tag: '+', text: core, oldLine: oldPos, newLine: newPos})
				newPos++
			}
		}
	}

	out := []string{
		colorize("--- "+fromFilename, ansiCyanBold),
		colorize("+++ "+toFilename, ansiCyanBold),
	}

	i := 0
	for i < len(lines) {
		if lines[i].tag == ' ' {
			i++
			continue
		}

		// lines[i] starts a change group. Extend the group's end past changes and short equal gaps.
		start := i - contextSize
		if start < 0 {
			start = 0
		}
		end := i // exclusive end of the last change in the group
		for j := i; j < len(lines); {
			if lines[j].tag != ' ' {
				j++
				end = j
				continue
			}
			gap := j
			for gap < len(lines) && lines[gap].tag == ' ' {
				gap++
			}
			if gap < len(lines) && gap-j <= 2*contextSize {
				j = gap
				continue
			}
			break
		}
		stop := end + contextSize
		if stop > len(lines) {
			stop = len(lines)
		}

		oldCount, newCount := 0, 0
		for _, ln := range lines[start:stop] {
			if ln.tag != '+' {
				oldCount++
			}
			if ln.tag != '-' {
				newCount++
			}
		}
		oldStart, newStart := lines[start].oldLine, lines[start].newLine
		// By unified diff convention, an empty range names the line before it.
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}

		out = append(out, colorize(fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount), ansiMagenta))
		for _, ln := range lines[start:stop] {
			text := string(ln.tag) + ln.text
			switch ln.tag {
			case '+':
				out = append(out, colorize(text, ansiGreen))
			case '-':
				out = append(out, colorize(text, ansiRed))
			default:
				out = append(out, text)
			}
		}
		i = stop
	}

	return strings.Join(out, "\n")
}
