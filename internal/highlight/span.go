package highlight

import "strings"

// Tag classifies a span or segment.
type Tag uint8

const (
	TagNone Tag = iota
	TagSearch
	TagError
)

func (t Tag) String() string {
	switch t {
	case TagSearch:
		return "search"
	case TagError:
		return "error"
	}
	return "none"
}

// Priorities used by Compose. Error wins over search where they overlap.
const (
	PrioritySearch = 1
	PriorityError  = 2
)

// Span is a half-open rune range [Start, End) tagged for highlighting.
type Span struct {
	Start    int
	End      int
	Tag      Tag
	Priority int
}

// Segment is a run of text with a single tag.
type Segment struct {
	Text string
	Tag  Tag
}

// Merge flattens text and spans into consecutive segments that cover text exactly. Each rune belongs to the highest priority span covering it (ties go to the earlier
// span in spans); runes covered by no span form TagNone segments. Distinct spans stay distinct segments even when adjacent. Span bounds are clamped to text.
func Merge(text string, spans []Span) []Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	owner := make([]int, len(runes))
	for i := range owner {
		owner[i] = -1
	}
	for si, sp := range spans {
		start := max(sp.Start, 0)
		end := min(sp.End, len(runes))
		for j := start; j < end; j++ {
			if owner[j] == -1 || spans[owner[j]].Priority < sp.Priority {
				owner[j] = si
			}
		}
	}

	var segs []Segment
	runStart := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && owner[i] == owner[runStart] {
			continue
		}
		tag := TagNone
		if o := owner[runStart]; o >= 0 {
			tag = spans[o].Tag
		}
		segs = append(segs, Segment{Text: string(runes[runStart:i]), Tag: tag})
		runStart = i
	}
	return segs
}

// Join concatenates the text of segs.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
