package diff

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// Diff is a line-level diff from old text to new text.
//
// Invariants:
//   - concat(Hunks.OldText) == OldText
//   - concat(Hunks.NewText) == NewText
type Diff struct {
	OldText string // Entire original text.
	NewText string // Entire revised text.
	Hunks   []Hunk // Ordered hunks that cover the whole diff and reconstruct OldText/NewText.
}

// Hunk is a contiguous group of whole lines. The \n is part of the hunk (ex: if a line in the middle of some text is removed, OldText for that hunk is \n terminated).
//
// Operations:
//   - OpEqual: OldText == NewText
//   - OpInsert: OldText=="" && NewText!=""
//   - OpDelete: OldText!="" && NewText==""
//   - OpReplace: OldText != "" and NewText != ""
type Hunk struct {
	Op      Op
	OldText string // Concatenation of old lines in this hunk; empty for inserts.
	NewText string // Concatenation of new lines in this hunk; empty for deletes.
}

// RunKind tags a Run.
type RunKind int

const (
	RunUnchanged RunKind = iota
	RunAdded
	RunRemoved
)

func (k RunKind) String() string {
	switch k {
	case RunAdded:
		return "added"
	case RunRemoved:
		return "removed"
	}
	return "unchanged"
}

// Run is a contiguous span of serialized text present in the old text (RunRemoved), the new text (RunAdded), or both (RunUnchanged). A sequence of Runs partitions
// both texts: the non-added runs concatenate to the old text and the non-removed runs concatenate to the new text.
type Run struct {
	Kind RunKind
	Text string
}

// defaultEOL is the EOL ('\n').
const defaultEOL = "\n"
