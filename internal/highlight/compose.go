package highlight

import (
	"strings"
	"unicode/utf8"
)

// Surface is a display target for highlighted text.
type Surface struct {
	// Escape makes raw text safe for the surface. nil means identity.
	Escape func(string) string

	// Placeholder is shown in the error span when the error position is at end of text. It is already in surface form (not escaped again).
	Placeholder string

	// Wrap renders one tagged segment (tag is never TagNone). Its text is already escaped.
	Wrap func(tag Tag, text string) string
}

func (s Surface) escape(text string) string {
	if s.Escape == nil {
		return text
	}
	return s.Escape(text)
}

// Compose escapes text for s and overlays highlights, returning segments whose text is in surface form.
//
// If search is non-empty after trimming, every match of the (escaped) term in the escaped text becomes a TagSearch segment. If loc is non-nil, the rune of the raw
// text at Offset(text, *loc) becomes a single TagError segment (or s.Placeholder if the offset is at end of text), and the text before and after it is escaped and
// searched independently.
func Compose(s Surface, text string, search string, loc *Location) []Segment {
	term := s.escape(strings.TrimSpace(search))

	if loc == nil {
		escaped := s.escape(text)
		return Merge(escaped, SearchSpans(escaped, term))
	}

	runes := []rune(text)
	off := Offset(text, *loc)

	before := s.escape(string(runes[:off]))
	errText := s.Placeholder
	after := ""
	if off < len(runes) {
		errText = s.escape(string(runes[off]))
		after = s.escape(string(runes[off+1:]))
	}

	errStart := utf8.RuneCountInString(before)
	afterStart := errStart + utf8.RuneCountInString(errText)

	spans := SearchSpans(before, term)
	spans = append(spans, Span{Start: errStart, End: afterStart, Tag: TagError, Priority: PriorityError})
	for _, sp := range SearchSpans(after, term) {
		sp.Start += afterStart
		sp.End += afterStart
		spans = append(spans, sp)
	}

	return Merge(before+errText+after, spans)
}

// Render composes text for s and returns the wrapped markup.
func Render(s Surface, text string, search string, loc *Location) string {
	return Wrap(s, Compose(s, text, search, loc))
}

// Wrap renders segs with s.Wrap, passing TagNone segments through as-is.
func Wrap(s Surface, segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Tag == TagNone || s.Wrap == nil {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(s.Wrap(seg.Tag, seg.Text))
	}
	return b.String()
}
