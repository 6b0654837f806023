// Package diff compares two serialized documents line by line and lays the result out as two independently numbered columns.
//
// Pipeline:
//   - DiffText diffs an "old" and a "new" text at line granularity (diffmatchpatch line mode) and returns a Diff: ordered hunks that, when concatenated, reconstruct
//     both sides. There is no intra-line diffing.
//   - Diff.Runs flattens hunks into Runs, each tagged unchanged, added, or removed. A replace hunk becomes a removed run followed by an added run.
//   - Align turns Runs into Columns. The left column holds removed and unchanged lines; the right column holds added and unchanged lines. Each column numbers its own
//     lines from 1 with no gaps. The empty string after a run's final newline is not a line.
//   - Compare runs the whole pipeline on two Values: normalize, serialize, diff, align. Serialization failures are absorbed into Comparison.Err.
//
// Invariants:
//   - concat(hunks.OldText) == Diff.OldText and concat(hunks.NewText) == Diff.NewText.
//   - The unchanged lines of each column, in order, are exactly the lines of the unchanged runs, in order.
//
// For terminal output of a classic diff, Diff.RenderUnified emits a unified diff.
package diff
