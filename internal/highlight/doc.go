// Package highlight overlays search matches and a single parse-error position on text for display.
//
// The pieces, leaf first:
//   - Merge flattens text plus a list of tagged, prioritized rune ranges (Span) into a linear list of Segments. Where spans overlap, the higher priority span owns
//     the rune and the lower one is clipped around it. Segments never nest.
//   - SearchSpans finds every non-overlapping, case-insensitive, literal occurrence of a trimmed search term, scanning left to right.
//   - Offset converts a 1-based line/column Location into a rune offset, clamping out-of-range positions instead of rejecting them.
//   - Compose escapes text for a Surface, overlays search spans, and, if a Location is given, overlays a one-rune error span. Text before and after the error rune is
//     searched independently, so a match straddling the error rune is split at that boundary (this is intended).
//
// A Surface describes the display target: how to escape text (HTML entities, terminal control characters), the glyph used when the error position is at end of text,
// and how to wrap a tagged segment. Render composes and wraps in one call.
//
// All offsets are rune offsets into the text they describe.
package highlight
