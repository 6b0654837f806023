package diff

import (
	"fmt"
	"strings"
)

// validate checks the Diff invariants and returns an error on the first violation.
func (d Diff) validate() error {
	var oldConcat, newConcat strings.Builder
	for hi, h := range d.Hunks {
		switch h.Op {
		case OpEqual:
			if h.OldText != h.NewText {
				return fmt.Errorf("hunk[%d]: OpEqual requires OldText==NewText", hi)
			}
		case OpInsert:
			if h.OldText != "" || h.NewText == "" {
				return fmt.Errorf("hunk[%d]: OpInsert requires OldText==\"\" and NewText!=\"\"", hi)
			}
		case OpDelete:
			if h.OldText == "" || h.NewText != "" {
				return fmt.Errorf("hunk[%d]: OpDelete requires OldText!=\"\" and NewText==\"\"", hi)
			}
		case OpReplace:
			if h.OldText == "" || h.NewText == "" {
				return fmt.Errorf("hunk[%d]: OpReplace requires OldText!=\"\" and NewText!=\"\"", hi)
			}
		default:
			return fmt.Errorf("hunk[%d]: unknown op %d", hi, h.Op)
		}
		oldConcat.WriteString(h.OldText)
		newConcat.WriteString(h.NewText)
	}

	if oldConcat.String() != d.OldText {
		return fmt.Errorf("concatenated hunk OldText does not reconstruct OldText")
	}
	if newConcat.String() != d.NewText {
		return fmt.Errorf("concatenated hunk NewText does not reconstruct NewText")
	}
	return nil
}
