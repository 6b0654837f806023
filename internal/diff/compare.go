package diff

import (
	"fmt"

	"github.com/codalotl/docview/internal/logging"
	"github.com/codalotl/docview/internal/value"
)

var log = logging.Get("docview.diff")

// Comparison is the result of Compare.
type Comparison struct {
	OldText   string // Serialized left side.
	NewText   string // Serialized right side.
	Columns   Columns
	Runs      []Run
	Identical bool  // No added or removed runs.
	Err       error // Serialization failure; the other fields are empty when set.
}

// Compare normalizes left and right, serializes each with indent, and diffs the serialized texts line by line. A side whose has flag is false serializes as the
// empty string, so comparing a document against nothing shows the whole document as added (or removed). Failures are recorded in Comparison.Err rather than
// returned; the caller shows an empty diff.
func Compare(left, right value.Value, hasLeft, hasRight bool, indent int) Comparison {
	oldText, err := serialize(left, hasLeft, indent)
	if err != nil {
		log.Warningf("compare: left side: %v", err)
		return Comparison{Err: fmt.Errorf("left: %w", err)}
	}
	newText, err := serialize(right, hasRight, indent)
	if err != nil {
		log.Warningf("compare: right side: %v", err)
		return Comparison{Err: fmt.Errorf("right: %w", err)}
	}

	runs := DiffText(oldText, newText).Runs()
	identical := true
	for _, r := range runs {
		if r.Kind != RunUnchanged {
			identical = false
			break
		}
	}
	return Comparison{OldText: oldText, NewText: newText, Columns: Align(runs), Runs: runs, Identical: identical}
}

// Unified renders the comparison as a unified diff (see Diff.RenderUnified). It returns "" if the comparison failed.
func (c Comparison) Unified(color bool, from, to string, contextSize int) string {
	if c.Err != nil {
		return ""
	}
	return DiffText(c.OldText, c.NewText).RenderUnified(color, from, to, contextSize)
}

func serialize(v value.Value, present bool, indent int) (string, error) {
	if !present {
		return "", nil
	}
	return value.Stringify(value.Normalize(v), indent)
}
