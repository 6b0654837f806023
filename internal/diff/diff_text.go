package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText diffs oldText to newText by whole lines, returning a Diff. Adjacent deletions and insertions are grouped into one OpReplace hunk.
func DiffText(oldText, newText string) Diff {
	dmp := diffmatchpatch.New()

	// Diff based on lines:
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	// Decode rune-string back to the original lines using the lineArray mapping.
	decode := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				b.WriteString(lineArray[idx])
			}
		}
		return b.String()
	}

	var hunks []Hunk
	var dels, ins strings.Builder

	flush := func() {
		if dels.Len() == 0 && ins.Len() == 0 {
			return
		}
		var op Op
		switch {
		case dels.Len() > 0 && ins.Len() > 0:
			op = OpReplace
		case dels.Len() > 0:
			op = OpDelete
		default:
			op = OpInsert
		}
		hunks = append(hunks, Hunk{Op: op, OldText: dels.String(), NewText: ins.String()})
		dels.Reset()
		ins.Reset()
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			text := decode(d.Text)
			if text == "" {
				continue
			}
			hunks = append(hunks, Hunk{Op: OpEqual, OldText: text, NewText: text})
		case diffmatchpatch.DiffDelete:
			dels.WriteString(decode(d.Text))
		case diffmatchpatch.DiffInsert:
			ins.WriteString(decode(d.Text))
		}
	}
	flush()

	diff := Diff{OldText: oldText, NewText: newText, Hunks: hunks}

	if err := diff.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}

	return diff
}

// Runs flattens d into tagged runs. A replace hunk yields its removed text first, then its added text.
func (d Diff) Runs() []Run {
	var runs []Run
	for _, h := range d.Hunks {
		switch h.Op {
		case OpEqual:
			runs = append(runs, Run{Kind: RunUnchanged, Text: h.OldText})
		case OpDelete:
			runs = append(runs, Run{Kind: RunRemoved, Text: h.OldText})
		case OpInsert:
			runs = append(runs, Run{Kind: RunAdded, Text: h.NewText})
		case OpReplace:
			runs = append(runs, Run{Kind: RunRemoved, Text: h.OldText}, Run{Kind: RunAdded, Text: h.NewText})
		}
	}
	return runs
}

// HasChanges reports whether any hunk is not OpEqual.
func (d Diff) HasChanges() bool {
	for _, h := range d.Hunks {
		if h.Op != OpEqual {
			return true
		}
	}
	return false
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}
